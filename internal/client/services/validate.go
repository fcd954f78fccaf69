package services

import (
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/lostfound/internal/client/models"
)

const (
	otpLength         = 6
	minPasswordLength = 6
)

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "Required"}
	}
	return nil
}

func validateEmail(email string) error {
	if err := required("email", email); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".") {
		return &ValidationError{Field: "email", Message: "Invalid email"}
	}
	return nil
}

// validateOTP accepts exactly six ASCII digits.
func validateOTP(otp string) error {
	if otp == "" {
		return &ValidationError{Field: "otp", Message: "Required"}
	}
	if len(otp) != otpLength {
		return &ValidationError{Field: "otp", Message: "OTP must be 6 digits"}
	}
	for i := 0; i < len(otp); i++ {
		if otp[i] < '0' || otp[i] > '9' {
			return &ValidationError{Field: "otp", Message: "OTP must be numeric"}
		}
	}
	return nil
}

func validateSignup(username, email, password, role string) (models.Role, error) {
	if err := required("username", username); err != nil {
		return "", err
	}
	if err := validateEmail(email); err != nil {
		return "", err
	}
	if err := required("password", password); err != nil {
		return "", err
	}
	if len(password) < minPasswordLength {
		return "", &ValidationError{Field: "password", Message: "Must be at least 6 characters"}
	}
	r, err := models.ParseRole(role)
	if err != nil {
		return "", &ValidationError{Field: "role", Message: "Invalid role"}
	}
	return r, nil
}

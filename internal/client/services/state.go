package services

// State is the position of the client in the login flow.
type State int

const (
	StateAnonymous State = iota
	StateCredentialsSubmitted
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateCredentialsSubmitted:
		return "credentials_submitted"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

package models

import "time"

// TimestampLayout is the ISO-8601 layout used for NotificationItem timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// NotificationPreferences are the user's notification toggles.
type NotificationPreferences struct {
	NewItems     bool `json:"newItems"`
	ClaimUpdates bool `json:"claimUpdates"`
}

// DefaultNotificationPreferences has every toggle on.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{NewItems: true, ClaimUpdates: true}
}

// NotificationItem is one entry of the local notice feed.
type NotificationItem struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// NewNotificationItem stamps message with t in UTC.
func NewNotificationItem(id int64, message string, t time.Time) NotificationItem {
	return NotificationItem{
		ID:        id,
		Message:   message,
		Timestamp: t.UTC().Format(TimestampLayout),
	}
}

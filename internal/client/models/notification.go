package models

import "time"

type NotificationState string

const (
	NotificationPending   NotificationState = "pending"
	NotificationDelivered NotificationState = "delivered"
	NotificationOpened    NotificationState = "opened"
)

// Notification is a locally scheduled reminder request.
type Notification struct {
	ID         string
	Identifier string
	Title      string
	Body       string
	FireAt     time.Time
	State      NotificationState
	CreatedAt  time.Time
}

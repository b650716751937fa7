package model

import "time"

// ContactMessage mirrors the `contact_messages` table.
type ContactMessage struct {
	ID        uint64    `json:"message_id"` // contact_messages.message_id
	Name      string    `json:"name"`       // contact_messages.name
	Email     string    `json:"email"`      // contact_messages.email
	Subject   string    `json:"subject"`    // contact_messages.subject
	Message   string    `json:"message"`    // contact_messages.message
	CreatedAt time.Time `json:"created_at"` // contact_messages.created_at
}

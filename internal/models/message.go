package models

import "time"

// Sender identifies who authored a message
type Sender string

const (
	SenderUser  Sender = "user"
	SenderModel Sender = "model"
)

// Role returns the role tag used by the generate API
func (s Sender) Role() string {
	if s == SenderUser {
		return "user"
	}
	return "model"
}

// Message is one immutable entry of the conversation
type Message struct {
	ID     string
	Sender Sender
	Text   string
	// Image is a data URI (data:<mime>;base64,<payload>), empty when absent
	Image     string
	Timestamp time.Time
}

// IsUser reports whether the message was typed by the user
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// HasImage reports whether the message carries an image
func (m Message) HasImage() bool {
	return m.Image != ""
}

// CountUser returns the number of user-authored messages
func CountUser(messages []Message) int {
	n := 0
	for _, msg := range messages {
		if msg.IsUser() {
			n++
		}
	}
	return n
}

// GenerationState is the transient state of the current send
type GenerationState struct {
	IsLoading bool
	Err       error
}

// ErrorMessage returns the recorded error text, or empty when there is none
func (s GenerationState) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

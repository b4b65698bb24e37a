// ABOUTME: Append-only conversation log contract and message types
// ABOUTME: Defines the MessageLog interface implemented by SQLiteStore

package store

import (
	"context"
)

// Sender identifies who produced a log entry.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderBot   Sender = "bot"
	SenderRobot Sender = "robot"
)

// Message is one entry in the conversation log. ID is assigned by the store
// on append, strictly increases with insertion order, and is never reused.
type Message struct {
	ID     int64
	Text   string
	Sender Sender
}

// MessageLog is the append-only conversation log. There is no update or
// delete: entries are immutable once written, and ListMessages returns them
// in exactly the order they were appended.
type MessageLog interface {
	// AppendMessage durably records a new entry and returns it with its
	// assigned ID.
	AppendMessage(ctx context.Context, text string, sender Sender) (*Message, error)

	// ListMessages returns every entry, oldest first.
	ListMessages(ctx context.Context) ([]*Message, error)
}

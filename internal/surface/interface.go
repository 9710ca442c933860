// Package surface describes what the voting core needs from the chat
// platform: posting text, attaching vote signals to a message and creating
// entries on the guild's scheduled-event calendar.
package surface

//go:generate mockgen -package=mocks -destination=mocks/mock_surface.go github.com/KirkDiggler/astrolabe/internal/surface Messenger,Scheduler

import "context"

// Messenger posts to channels and wires signal collection onto messages
type Messenger interface {
	// SendMessage posts text to a channel, splitting it into ordered chunks
	// when it exceeds MaxMessageLength
	SendMessage(ctx context.Context, input *SendMessageInput) (*SendMessageOutput, error)

	// Subscribe attaches the given signal kinds to a message so users can vote
	Subscribe(ctx context.Context, input *SubscribeInput) error
}

// Scheduler creates entries on the external calendar
type Scheduler interface {
	CreateScheduledEntry(ctx context.Context, input *CreateScheduledEntryInput) (*CreateScheduledEntryOutput, error)
}

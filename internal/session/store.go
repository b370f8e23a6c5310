// Package session persists conversation state between turns. The chat
// service is the only writer; a store implementation only needs to
// round-trip the state blob and expire idle sessions.
package session

import (
	"context"
	"errors"

	"github.com/shopmate/support-chat/internal/bot"
)

// ErrNotFound is returned when no state exists for a session ID.
var ErrNotFound = errors.New("session: not found")

type Store interface {
	Get(ctx context.Context, sessionID string) (*bot.Conversation, error)
	Put(ctx context.Context, conv *bot.Conversation) error
	Delete(ctx context.Context, sessionID string) error
}

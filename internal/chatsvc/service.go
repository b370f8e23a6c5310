// Package chatsvc coordinates one user turn end to end: load session
// state, run the router, persist the updated state. Turns within one
// session are serialized; different sessions run concurrently.
package chatsvc

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shopmate/support-chat/internal/bot"
	"github.com/shopmate/support-chat/internal/common"
	"github.com/shopmate/support-chat/internal/metrics"
	"github.com/shopmate/support-chat/internal/session"
)

type Service struct {
	sessions session.Store
	router   *bot.Router
	locks    sync.Map // session id -> *sync.Mutex
	metrics  *metrics.Metrics
	log      *logrus.Logger
}

func NewService(sessions session.Store, router *bot.Router, m *metrics.Metrics, log *logrus.Logger) *Service {
	if m == nil {
		m = metrics.Nop()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{sessions: sessions, router: router, metrics: m, log: log}
}

func (s *Service) lockFor(sessionID string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// CreateSession allocates a fresh conversation and persists it.
func (s *Service) CreateSession(ctx context.Context) (*bot.Conversation, error) {
	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	conv := bot.NewConversation(id)
	if err := s.sessions.Put(ctx, conv); err != nil {
		return nil, err
	}
	s.metrics.ActiveSessions.Inc()
	s.log.WithField("session_id", id).Info("session created")
	return conv, nil
}

// HandleTurn runs one user message through the router and returns the
// reply. The only error surfaced to the transport layer is an unknown
// session; everything downstream degrades to user-safe text.
func (s *Service) HandleTurn(ctx context.Context, sessionID, input string) (reply string, err error) {
	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	conv, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	start := time.Now()
	defer func() {
		s.metrics.TurnDuration.Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{
				"session_id": sessionID,
				"panic":      r,
			}).Error("turn handler panicked")
			reply = "I'm sorry, something went wrong on our end. Please try again."
			err = nil
		}
	}()

	reply = s.router.Route(ctx, conv, input)

	if perr := s.sessions.Put(ctx, conv); perr != nil {
		// The reply is already composed; losing one state write is
		// better than failing the whole turn.
		s.log.WithField("session_id", sessionID).WithError(perr).Error("session save failed")
	}
	return reply, nil
}

// History returns the transcript for a session, oldest first.
func (s *Service) History(ctx context.Context, sessionID string) ([]bot.Message, error) {
	conv, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return conv.Recent(0), nil
}

// EndSession drops a conversation from the store.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.locks.Delete(sessionID)
	s.metrics.ActiveSessions.Dec()
	return nil
}

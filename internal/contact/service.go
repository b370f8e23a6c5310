package contact

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shopmate/support-chat/internal/metrics"
)

// Publisher enqueues a saved request for the dispatch worker.
type Publisher interface {
	PublishRequest(ctx context.Context, id uint) error
}

// Service saves contact requests and hands them to the dispatch queue.
// It implements the chat flow's recorder interface.
type Service struct {
	repo    *Repo
	pub     Publisher // nil when no broker is configured
	metrics *metrics.Metrics
	log     *logrus.Logger
}

func NewService(repo *Repo, pub Publisher, m *metrics.Metrics, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if m == nil {
		m = metrics.Nop()
	}
	return &Service{repo: repo, pub: pub, metrics: m, log: log}
}

// Record saves the request, then publishes it best-effort: a broker
// failure is logged and the row stays in the table for a sweep later.
func (s *Service) Record(ctx context.Context, name, email, phone, notes string) error {
	req := &Request{
		FullName:         name,
		Email:            email,
		RequestTimestamp: time.Now().UTC(),
	}
	if phone != "" {
		req.PhoneNumber = &phone
	}
	if notes != "" {
		req.Notes = &notes
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return err
	}
	s.metrics.ContactRequestsSaved.Inc()
	s.log.WithFields(logrus.Fields{
		"request_id": req.ID,
		"email":      email,
	}).Info("contact request saved")

	if s.pub != nil {
		if err := s.pub.PublishRequest(ctx, req.ID); err != nil {
			s.log.WithField("request_id", req.ID).WithError(err).Error("contact request publish failed")
		}
	}
	return nil
}

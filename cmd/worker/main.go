package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/shopmate/support-chat/internal/config"
	"github.com/shopmate/support-chat/internal/contact"
	"github.com/shopmate/support-chat/internal/database"
)

func workerConcurrency() int {
	v := os.Getenv("WORKER_CONCURRENCY")
	if v == "" {
		return 2
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	if cfg.RabbitURL == "" {
		log.Fatal("RABBIT_URL is required for the dispatch worker")
	}

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	repo := contact.NewRepo(db)

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.WithError(err).Fatal("rabbit dial")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Fatal("rabbit channel")
	}
	defer ch.Close()

	// Declare the same topology as the publisher so either side can
	// start first.
	mainQ := cfg.RabbitQueue
	retryQ := mainQ + ".retry"
	dlqQ := mainQ + ".dlq"
	if _, err := ch.QueueDeclare(dlqQ, true, false, false, false, nil); err != nil {
		log.WithError(err).Fatal("declare dlq")
	}
	if _, err := ch.QueueDeclare(retryQ, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": mainQ,
	}); err != nil {
		log.WithError(err).Fatal("declare retry queue")
	}
	if _, err := ch.QueueDeclare(mainQ, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dlqQ,
	}); err != nil {
		log.WithError(err).Fatal("declare main queue")
	}

	concurrency := workerConcurrency()
	if err := ch.Qos(concurrency, 0, false); err != nil {
		log.WithError(err).Fatal("qos")
	}

	msgs, err := ch.Consume(mainQ, "", false, false, false, false, nil)
	if err != nil {
		log.WithError(err).Fatal("consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(logrus.Fields{
		"queue":       mainQ,
		"concurrency": concurrency,
	}).Info("dispatch worker started")

	jobs := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				var m contact.RequestMessage
				if err := json.Unmarshal(d.Body, &m); err != nil || m.RequestID == 0 {
					log.WithField("worker", workerID).WithError(err).Warn("bad message")
					_ = d.Nack(false, false)
					continue
				}

				start := time.Now()
				if err := dispatch(ctx, repo, log, m.RequestID); err != nil {
					log.WithFields(logrus.Fields{
						"worker":     workerID,
						"request_id": m.RequestID,
						"cost":       time.Since(start).String(),
					}).WithError(err).Error("dispatch failed")
					_ = d.Nack(false, false)
					continue
				}

				if err := d.Ack(false); err != nil {
					log.WithFields(logrus.Fields{
						"worker":     workerID,
						"request_id": m.RequestID,
					}).WithError(err).Error("ack failed")
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				log.Warn("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			jobs <- d
		}
	}
}

// dispatch hands one saved contact request to the support team. The
// notification channel is the structured log for now; swapping in an
// email or ticketing integration only touches this function.
func dispatch(ctx context.Context, repo *contact.Repo, log *logrus.Logger, id uint) error {
	req, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req.DispatchedAt != nil {
		// redelivery of an already-handled request
		return nil
	}

	fields := logrus.Fields{
		"request_id": req.ID,
		"name":       req.FullName,
		"email":      req.Email,
		"requested":  req.RequestTimestamp.Format(time.RFC3339),
	}
	if req.PhoneNumber != nil {
		fields["phone"] = *req.PhoneNumber
	}
	log.WithFields(fields).Info("contact request ready for support team")

	return repo.MarkDispatched(ctx, req.ID)
}

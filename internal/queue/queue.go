package queue

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/marketinghub-backend/internal/notify"
)

// TopicNotificationSends carries notify.EmailJob payloads from the
// scheduler and report tools to whichever delivery path is configured.
const TopicNotificationSends = "notification_sends"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is the in-process delivery path used when no broker is
// configured. Handlers run asynchronously with retry and backoff.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
	log      *zap.SugaredLogger
}

var _ Queue = (*InMemoryQueue)(nil)

// NewInMemoryQueue creates a new queue.
func NewInMemoryQueue(log *zap.SugaredLogger) *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
		log:      log,
	}
}

// jobEnvelope wraps a payload with retry info.
type jobEnvelope struct {
	payload    any
	retryCount int
	maxRetries int
}

// Publish sends a message to all subscribers.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := jobEnvelope{payload: payload, maxRetries: 3}
	for _, handler := range handlers {
		go q.processJob(handler, job)
	}
	return nil
}

// processJob handles retries and errors.
func (q *InMemoryQueue) processJob(handler func(payload any) error, job jobEnvelope) {
	for job.retryCount <= job.maxRetries {
		err := handler(job.payload)
		if err == nil {
			return // ACK
		}

		job.retryCount++
		q.log.Warnw("job failed", "attempt", job.retryCount, "max", job.maxRetries, "error", err)

		if job.retryCount > job.maxRetries {
			q.log.Errorw("job permanently failed", "attempts", job.maxRetries)
			return // no requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.retryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic.
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartEmailSubscriber wires the in-process delivery path: EmailJobs
// published to the notification topic are sent through the mailer. An
// error-status payload counts as handled; only transport-level surprises
// trigger the queue's retry.
func StartEmailSubscriber(q Queue, mailer notify.EmailSender, log *zap.SugaredLogger) {
	err := q.Subscribe(TopicNotificationSends, func(payload any) error {
		job, ok := payload.(notify.EmailJob)
		if !ok {
			log.Warnw("invalid payload type, expected notify.EmailJob")
			return nil // no retry
		}

		result := mailer.Send(job.To, job.Subject, job.HTMLBody)
		log.Infow("📩 processed queued email", "to", job.To, "status", result["status"])
		return nil
	})
	if err != nil {
		log.Warnw("failed to start notification subscriber", "error", err)
	}
}

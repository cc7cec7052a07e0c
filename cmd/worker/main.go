// cmd/worker/main.go
package main

import (
	"encoding/json"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/unclebandit/marketinghub-backend/internal/config"
	"github.com/unclebandit/marketinghub-backend/internal/notify"
	"github.com/unclebandit/marketinghub-backend/internal/queue"
)

// maxEmailAttempts caps deliveries of one failing email job.
const maxEmailAttempts = 3

// redeliver returns the attempt number a failed job is on and whether
// another attempt is allowed. The count travels in the x-retry-count
// header of the republished message.
func redeliver(headers amqp.Table) (int32, bool) {
	var count int32
	switch v := headers["x-retry-count"].(type) {
	case int32:
		count = v
	case int64:
		count = int32(v)
	case int:
		count = int32(v)
	}
	attempt := count + 1
	return attempt, attempt < maxEmailAttempts
}

// The worker drains the notification queue: the server publishes
// notify.EmailJob payloads and this process delivers them through SMTP.
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	if err := godotenv.Load(); err != nil {
		log.Infow("⚠️ no .env file found, relying on OS environment variables")
	}
	cfg := config.Load()
	if !cfg.HasAMQP() {
		log.Fatalw("AMQP_URL is required for the worker")
	}

	mailer := notify.NewSMTPSender(cfg, log)

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatalw("failed to connect to broker", "error", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalw("failed to open a channel", "error", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.TopicNotificationSends, // name
		true,                         // durable
		false,                        // delete when unused
		false,                        // exclusive
		false,                        // no-wait
		nil,                          // arguments
	)
	if err != nil {
		log.Fatalw("failed to declare queue", "error", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatalw("failed to register consumer", "error", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var job notify.EmailJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				log.Warnw("invalid job", "error", err)
				d.Ack(false)
				continue
			}

			result := mailer.Send(job.To, job.Subject, job.HTMLBody)
			if result["status"] == "error" {
				// A Nack requeue would redeliver with the original headers
				// and never advance the count, so failed jobs are acked and
				// republished with the count stamped on.
				attempt, retry := redeliver(d.Headers)
				if !retry {
					log.Warnw("dropping email after repeated failures",
						"to", job.To, "attempts", attempt, "message", result["message"])
				} else if err := ch.Publish("", q.Name, false, false, amqp.Publishing{
					ContentType: "application/json",
					Body:        d.Body,
					Headers:     amqp.Table{"x-retry-count": attempt},
				}); err != nil {
					log.Warnw("requeue failed", "to", job.To, "error", err)
				} else {
					log.Warnw("delivery failed, requeued",
						"to", job.To, "attempt", attempt, "message", result["message"])
				}
			}

			d.Ack(false)
		}
	}()

	log.Infow("worker running, waiting for notification jobs")
	<-forever
}

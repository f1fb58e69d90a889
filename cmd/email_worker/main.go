package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/javnievic/comparte-tu-tiempo/config"
	"github.com/javnievic/comparte-tu-tiempo/pkg/helpers"
	"github.com/javnievic/comparte-tu-tiempo/pkg/mailer"
)

// email_worker consumes EmailJob messages from RabbitMQ and delivers them
// through Mailgun. Run alongside the API server.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Warn("MAIL_SEND_ENABLED is false, jobs will be consumed but not delivered")
	}
	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		log.Fatalf("failed to set qos: %v", err)
	}

	deliveries, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to start consumer: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.Infof("email worker consuming from %q", cfg.RabbitMQEmailQueue)
	for {
		select {
		case d, ok := <-deliveries:
			if !ok {
				logger.Error("delivery channel closed")
				return
			}
			handle(d, mg, cfg.MailSendEnabled, logger)
		case <-quit:
			logger.Info("email worker shutting down")
			return
		}
	}
}

func handle(d amqp.Delivery, mg *mailer.Mailgun, sendEnabled bool, logger *logrus.Logger) {
	var job mailer.EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.Errorf("dropping malformed job: %v", err)
		_ = d.Nack(false, false)
		return
	}
	job.Render()

	if !sendEnabled {
		logger.Infof("mail sending disabled, dropping job to=%s subject=%q", job.To, job.Subject)
		_ = d.Ack(false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := mg.Send(ctx, job.To, job.Subject, job.Text); err != nil {
		logger.Errorf("failed to send email to=%s: %v", job.To, err)
		// Requeue once; a redelivered message that fails again is dropped
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	logger.Infof("email sent to=%s subject=%q", job.To, job.Subject)
	_ = d.Ack(false)
}

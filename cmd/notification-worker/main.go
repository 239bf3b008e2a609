package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/streadway/amqp"

	"meetapp/config"
	"meetapp/internal/adapters/email"
	"meetapp/internal/adapters/queue"
	"meetapp/internal/domain"
)

// The worker consumes subscription notices from the queue and mails the
// meetup organizer. It runs separately from the API server so a slow or
// failing mail provider never touches request latency.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	if cfg.AMQPUrl == "" {
		logger.Error("AMQP_URL is required")
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	}, logger)
	if err != nil {
		logger.Error("init mailer", "err", err)
		os.Exit(1)
	}
	renderer := email.NewTemplateRenderer()

	conn, err := amqp.Dial(cfg.AMQPUrl)
	if err != nil {
		logger.Error("connect to broker", "err", err)
		os.Exit(1)
	}
	defer conn.Close()
	ch, err := conn.Channel()
	if err != nil {
		logger.Error("open broker channel", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	handler := func(body []byte) error {
		var notice domain.SubscriptionNotice
		if err := json.Unmarshal(body, &notice); err != nil {
			// Malformed payloads would requeue forever; log and ack instead.
			logger.Error("dropping malformed notice", "err", err)
			return nil
		}
		subject, html, text, err := renderer.Render("subscription", notice)
		if err != nil {
			return fmt.Errorf("render notice: %w", err)
		}
		if err := mailer.Send(notice.OrganizerEmail, subject, html, text); err != nil {
			return fmt.Errorf("send notice to %s: %w", notice.OrganizerEmail, err)
		}
		logger.Info("subscription notice sent",
			"organizer", notice.OrganizerEmail,
			"meetup", notice.MeetupTitle,
		)
		return nil
	}

	logger.Info("notification worker consuming", "topic", domain.TopicSubscriptionCreated)
	if err := queue.Consume(ctx, ch, domain.TopicSubscriptionCreated, logger, handler); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("notification worker stopped")
}

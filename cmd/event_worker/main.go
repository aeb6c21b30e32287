package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/correo/user-service/config"
	"github.com/correo/user-service/pkg/events"
	"github.com/correo/user-service/pkg/mailer"
)

// Consumes the user lifecycle queue and sends the welcome email for
// user.created events. Other event types are acknowledged and logged.
func main() {
	cfg := config.Load()
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQEventQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEventQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	var mg *mailer.Mailgun
	if cfg.MailSendEnabled && cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.MailgunSender != "" {
		mg = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		log.Println("mail sending disabled; events will be logged only")
	}
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			var ev events.UserEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			if ev.Type == events.UserCreated && mg != nil {
				subject := "Welcome!"
				text := fmt.Sprintf("Hi %s,\n\nyour account was created successfully.", ev.Name)
				if err := mg.Send(ctx, ev.Email, subject, text, ""); err != nil {
					log.Printf("send welcome email to %s: %v", ev.Email, err)
					_ = msg.Nack(false, true) // requeue for retry
					continue
				}
			}

			log.Printf("handled event type=%s user_id=%s", ev.Type, ev.UserID)
			_ = msg.Ack(false)
		}
	}()

	<-stop
	log.Println("shutting down event worker")
	_ = ch.Close()
	<-done
}

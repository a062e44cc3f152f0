package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/joho/godotenv"

	"github.com/pawkeeper/notices-api/config"
	"github.com/pawkeeper/notices-api/pkg/mailer"
)

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>Welcome to the notices board. Your account is ready — log in, browse the
categories, and favorite the notices you want to keep an eye on.</p>
`))

// sender is what handleDelivery needs from the mail client.
type sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
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

	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			handleDelivery(ctx, mg, msg)
		}
		close(done)
	}()

	log.Printf("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// handleDelivery processes one queued job. Undecodable or unrenderable
// messages are dropped outright. A send failure is retried once via requeue;
// a message that already failed a redelivery is dropped so a permanently
// rejected address cannot hot-loop the queue.
func handleDelivery(ctx context.Context, mg sender, msg amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		log.Printf("bad message: %v", err)
		_ = msg.Nack(false, false)
		return
	}

	subject, text, html, err := renderJob(job)
	if err != nil {
		log.Printf("render failed: %v", err)
		_ = msg.Nack(false, false)
		return
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := mg.Send(c, job.To, subject, text, html); err != nil {
		log.Printf("send failed (redelivered=%v): %v", msg.Redelivered, err)
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}
	_ = msg.Ack(false)
}

// renderJob resolves the job's template into a sendable subject and body.
// Jobs without a template pass their fields through untouched.
func renderJob(job mailer.EmailJob) (subject, text, html string, err error) {
	subject, text, html = job.Subject, job.Text, job.HTML
	switch {
	case strings.EqualFold(job.Template, "welcome"):
		var buf bytes.Buffer
		if err := welcomeTmpl.Execute(&buf, struct{ Name string }{name(job.Data)}); err != nil {
			return "", "", "", err
		}
		html = buf.String()
		subject = "Welcome to the notices board"
	case job.Template != "":
		return "", "", "", fmt.Errorf("unknown template %q", job.Template)
	}
	return subject, text, html, nil
}

func name(data map[string]any) string {
	v, ok := data["Name"]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

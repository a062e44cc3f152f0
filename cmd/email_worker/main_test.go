package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pawkeeper/notices-api/pkg/mailer"
)

type recordingAcker struct {
	acked         bool
	nacked        bool
	nackedRequeue bool
}

func (a *recordingAcker) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *recordingAcker) Nack(tag uint64, multiple bool, requeue bool) error {
	a.nacked = true
	a.nackedRequeue = requeue
	return nil
}

func (a *recordingAcker) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

type stubSender struct {
	err   error
	calls int
}

func (s *stubSender) Send(ctx context.Context, to, subject, text, html string) error {
	s.calls++
	return s.err
}

func delivery(acker *recordingAcker, body string, redelivered bool) amqp.Delivery {
	return amqp.Delivery{Acknowledger: acker, Body: []byte(body), Redelivered: redelivered}
}

func TestHandleDeliveryAcksOnSuccess(t *testing.T) {
	acker := &recordingAcker{}
	snd := &stubSender{}

	handleDelivery(context.Background(), snd, delivery(acker, `{"to":"a@example.com","template":"welcome"}`, false))

	if snd.calls != 1 {
		t.Fatalf("send calls = %d, want 1", snd.calls)
	}
	if !acker.acked || acker.nacked {
		t.Fatalf("acked=%v nacked=%v, want ack only", acker.acked, acker.nacked)
	}
}

func TestHandleDeliveryRequeuesFirstSendFailure(t *testing.T) {
	acker := &recordingAcker{}
	snd := &stubSender{err: errors.New("mailgun down")}

	handleDelivery(context.Background(), snd, delivery(acker, `{"to":"a@example.com","template":"welcome"}`, false))

	if !acker.nacked || !acker.nackedRequeue {
		t.Fatalf("nacked=%v requeue=%v, want nack with requeue", acker.nacked, acker.nackedRequeue)
	}
}

func TestHandleDeliveryDropsRedeliveredSendFailure(t *testing.T) {
	acker := &recordingAcker{}
	snd := &stubSender{err: errors.New("address rejected")}

	handleDelivery(context.Background(), snd, delivery(acker, `{"to":"a@example.com","template":"welcome"}`, true))

	if !acker.nacked || acker.nackedRequeue {
		t.Fatalf("nacked=%v requeue=%v, want nack without requeue", acker.nacked, acker.nackedRequeue)
	}
}

func TestHandleDeliveryDropsBadPayload(t *testing.T) {
	acker := &recordingAcker{}
	snd := &stubSender{}

	handleDelivery(context.Background(), snd, delivery(acker, `{not json`, false))

	if snd.calls != 0 {
		t.Fatal("sender must not be called for an undecodable message")
	}
	if !acker.nacked || acker.nackedRequeue {
		t.Fatalf("nacked=%v requeue=%v, want drop", acker.nacked, acker.nackedRequeue)
	}
}

func TestRenderJobWelcome(t *testing.T) {
	subject, _, html, err := renderJob(mailer.EmailJob{
		To:       "a@example.com",
		Template: "welcome",
		Data:     map[string]any{"Name": "Alice"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if subject == "" {
		t.Fatal("welcome render must set a subject")
	}
	if !strings.Contains(html, "Alice") {
		t.Fatalf("html %q does not greet by name", html)
	}
}

func TestRenderJobUnknownTemplate(t *testing.T) {
	if _, _, _, err := renderJob(mailer.EmailJob{Template: "goodbye"}); err == nil {
		t.Fatal("unknown template must fail the render")
	}
}

func TestRenderJobPassthrough(t *testing.T) {
	subject, text, html, err := renderJob(mailer.EmailJob{Subject: "s", Text: "t", HTML: "<b>h</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if subject != "s" || text != "t" || html != "<b>h</b>" {
		t.Fatalf("passthrough mangled the job: %q %q %q", subject, text, html)
	}
}

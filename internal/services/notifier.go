package services

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/arzan03/TalentBridge/internal/config"
	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/utils"
)

// Mailer delivers a plain-text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends through an SMTP relay with PLAIN auth.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer sends through the relay in cfg.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		auth: auth,
		from: cfg.From,
	}
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}

// LogMailer only logs; used when no SMTP host is configured.
type LogMailer struct{}

// Send logs the mail instead of delivering it.
func (LogMailer) Send(_ context.Context, to, subject, _ string) error {
	log.Infow("Mail not sent, no SMTP host configured", "to", to, "subject", subject)
	return nil
}

// Notifier sends account mail in the background. Delivery failures are
// logged and never reach the caller.
type Notifier struct {
	mailer  Mailer
	pool    *utils.WorkerPool
	timeout time.Duration
}

// NewNotifier starts workers goroutines draining the mail queue.
func NewNotifier(mailer Mailer, workers int) *Notifier {
	return &Notifier{
		mailer:  mailer,
		pool:    utils.NewWorkerPool(workers),
		timeout: 30 * time.Second,
	}
}

// Welcome queues the account-ready mail for user.
func (n *Notifier) Welcome(user *models.User) {
	subject := "Welcome to TalentBridge"
	body := fmt.Sprintf("Hi %s,\n\nYour %s account is ready.\n", user.Name, user.Role)
	n.send(user.Email, subject, body)
}

func (n *Notifier) send(to, subject, body string) {
	err := n.pool.AddTask(func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.mailer.Send(ctx, to, subject, body); err != nil {
			log.Errorw("Failed to send mail", "to", to, "subject", subject, "error", err)
		}
	})
	if err != nil {
		log.Warnw("Mail dropped", "to", to, "error", err)
	}
}

// Wait blocks until queued mail has been attempted.
func (n *Notifier) Wait() {
	n.pool.Wait()
}

// Shutdown stops accepting mail and waits for queued sends until ctx ends.
func (n *Notifier) Shutdown(ctx context.Context) error {
	return n.pool.Shutdown(ctx)
}

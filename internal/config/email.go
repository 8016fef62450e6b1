package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/resend/resend-go/v2"
	"go.uber.org/fx"
	"gopkg.in/gomail.v2"
)

type EmailConfig struct {
	// Provider selects the delivery backend: "resend" or "smtp".
	Provider string
	From     string

	ResendAPIKey string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
}

func NewEmailConfig() *EmailConfig {
	provider := os.Getenv("EMAIL_PROVIDER")
	if provider == "" {
		provider = "resend"
	}
	from := os.Getenv("FROM_EMAIL")
	if from == "" {
		log.Fatal("FROM_EMAIL not set")
	}

	cfg := &EmailConfig{Provider: provider, From: from}
	switch provider {
	case "resend":
		cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
		if cfg.ResendAPIKey == "" {
			log.Fatal("RESEND_API_KEY not set")
		}
	case "smtp":
		cfg.SMTPHost = os.Getenv("SMTP_HOST")
		if cfg.SMTPHost == "" {
			log.Fatal("SMTP_HOST not set")
		}
		port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if err != nil {
			log.Fatal("SMTP_PORT not set or invalid")
		}
		cfg.SMTPPort = port
		cfg.SMTPUser = os.Getenv("SMTP_USER")
		cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	default:
		log.Fatalf("Unknown EMAIL_PROVIDER: %q", provider)
	}
	return cfg
}

// EmailService sends transactional mail through Resend or a plain SMTP relay.
type EmailService struct {
	config *EmailConfig
	resend *resend.Client
}

func NewEmailService(lc fx.Lifecycle, config *EmailConfig) *EmailService {
	service := &EmailService{config: config}
	if config.Provider == "resend" {
		service.resend = resend.NewClient(config.ResendAPIKey)
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Printf("Email service initialized (provider=%s)", config.Provider)
			return nil
		},
	})
	return service
}

func (e *EmailService) SendEmail(to, subject, body string) error {
	if e.config.Provider == "smtp" {
		return e.sendSMTP(to, subject, body)
	}
	return e.sendResend(to, subject, body)
}

func (e *EmailService) sendResend(to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    e.config.From,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	sent, err := e.resend.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}
	log.Println("Email sent successfully to", to, "id:", sent.Id)
	return nil
}

func (e *EmailService) sendSMTP(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(e.config.SMTPHost, e.config.SMTPPort, e.config.SMTPUser, e.config.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	log.Println("Email sent successfully to", to)
	return nil
}

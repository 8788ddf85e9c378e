package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"agenda-api/core/config"
)

// EmailConfig holds SMTP settings read from the environment.
type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() EmailConfig {
	return EmailConfig{
		Host:     config.Get("SMTP_HOST"),
		Port:     config.GetSafe("SMTP_PORT", "587"),
		Username: config.Get("SMTP_USER"),
		Password: config.Get("SMTP_PASSWORD"),
		From:     config.GetSafe("EMAIL_FROM", config.Get("SMTP_USER")),
	}
}

// SendEmailTLS sends a plain-text email over an explicit TLS connection.
// Returns nil without sending when SMTP is not configured.
func SendEmailTLS(to []string, subject, body string) error {
	cfg := GetEmailConfig()
	if cfg.Host == "" {
		return nil
	}

	addr := cfg.Host + ":" + cfg.Port
	msg := strings.Join([]string{
		"From: " + cfg.From,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: cfg.Host})
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if cfg.Username != "" {
		auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(cfg.From); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

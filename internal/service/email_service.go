package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/partnerconnector/internal/config"
	"github.com/partnerconnector/internal/constants"
	"github.com/partnerconnector/internal/models"
)

// EmailService sends plain-text notification emails over SMTP.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates an email service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// CommissionEmailInput carries the commission notification content.
type CommissionEmailInput struct {
	EventType string
	DealNo    string
	Amount    models.Money
	Reference string
}

// SendCommissionEmail notifies a partner about a commission lifecycle event.
func (s *EmailService) SendCommissionEmail(toEmail string, input CommissionEmailInput) error {
	subject, body := buildCommissionContent(input)
	return s.sendTextEmail(toEmail, subject, body)
}

// DealStageEmailInput carries the deal stage notification content.
type DealStageEmailInput struct {
	DealNo       string
	BusinessName string
	Stage        string
}

// SendDealStageEmail notifies a partner that their referral moved stages.
func (s *EmailService) SendDealStageEmail(toEmail string, input DealStageEmailInput) error {
	subject := fmt.Sprintf("Referral %s update", input.DealNo)
	body := fmt.Sprintf("Your referral %s (%s) moved to stage: %s.",
		input.DealNo, input.BusinessName, strings.ReplaceAll(input.Stage, "_", " "))
	return s.sendTextEmail(toEmail, subject, body)
}

func buildCommissionContent(input CommissionEmailInput) (string, string) {
	switch input.EventType {
	case constants.NotificationEventCommissionCreated:
		subject := fmt.Sprintf("Commission recorded for deal %s", input.DealNo)
		body := fmt.Sprintf("A commission of %s has been recorded for deal %s and is awaiting approval.",
			input.Amount.String(), input.DealNo)
		return subject, body
	case constants.NotificationEventCommissionApproved:
		subject := fmt.Sprintf("Commission approved for deal %s", input.DealNo)
		body := fmt.Sprintf("Your commission of %s for deal %s has been approved and will be paid shortly.",
			input.Amount.String(), input.DealNo)
		return subject, body
	case constants.NotificationEventCommissionPaid:
		subject := fmt.Sprintf("Commission paid for deal %s", input.DealNo)
		body := fmt.Sprintf("Your commission of %s for deal %s has been paid.", input.Amount.String(), input.DealNo)
		if strings.TrimSpace(input.Reference) != "" {
			body += fmt.Sprintf(" Transfer reference: %s.", strings.TrimSpace(input.Reference))
		}
		return subject, body
	default:
		subject := fmt.Sprintf("Update for deal %s", input.DealNo)
		body := fmt.Sprintf("There is an update on the commission for deal %s.", input.DealNo)
		return subject, body
	}
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrEmailInvalid
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return normalizeEmailSendError(sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	if s.cfg.UseTLS {
		return normalizeEmailSendError(sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	return normalizeEmailSendError(sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrEmailSendFailed, err)
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
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
	if _, err = w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

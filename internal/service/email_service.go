package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/pizzaorder-next/internal/config"
	"github.com/pizzaorder-next/internal/constants"
	"github.com/pizzaorder-next/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// OrderStatusEmailInput 订单状态邮件输入
type OrderStatusEmailInput struct {
	OrderNo  string
	Status   string
	Amount   models.Money
	Currency string
}

// SendOrderStatusEmail 发送订单状态通知
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput, locale string) error {
	subject, body := buildOrderStatusContent(input, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceNotConfigured
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
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

	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
}

func buildOrderStatusContent(input OrderStatusEmailInput, locale string) (string, string) {
	statusKey := strings.ToLower(strings.TrimSpace(input.Status))
	if strings.ToLower(strings.TrimSpace(locale)) == "he" {
		statusText := hebrewStatusText(statusKey)
		subject := fmt.Sprintf("עדכון הזמנה %s", input.OrderNo)
		body := fmt.Sprintf(
			"הזמנה %s\nסטטוס: %s\nסכום: %s %s\n\nתודה שהזמנתם אצלנו!",
			input.OrderNo, statusText, input.Amount.String(), input.Currency,
		)
		return subject, body
	}

	statusText := englishStatusText(statusKey)
	subject := fmt.Sprintf("Order %s update", input.OrderNo)
	body := fmt.Sprintf(
		"Order %s\nStatus: %s\nTotal: %s %s\n\nThank you for your order!",
		input.OrderNo, statusText, input.Amount.String(), input.Currency,
	)
	return subject, body
}

func englishStatusText(status string) string {
	switch status {
	case constants.OrderStatusPending:
		return "received, waiting for confirmation"
	case constants.OrderStatusConfirmed:
		return "confirmed"
	case constants.OrderStatusPreparing:
		return "being prepared"
	case constants.OrderStatusReady:
		return "ready for pickup / delivery"
	case constants.OrderStatusDelivered:
		return "delivered"
	case constants.OrderStatusCancelled:
		return "cancelled"
	}
	return status
}

func hebrewStatusText(status string) string {
	switch status {
	case constants.OrderStatusPending:
		return "התקבלה, ממתינה לאישור"
	case constants.OrderStatusConfirmed:
		return "אושרה"
	case constants.OrderStatusPreparing:
		return "בהכנה"
	case constants.OrderStatusReady:
		return "מוכנה לאיסוף / משלוח"
	case constants.OrderStatusDelivered:
		return "נמסרה"
	case constants.OrderStatusCancelled:
		return "בוטלה"
	}
	return status
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
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

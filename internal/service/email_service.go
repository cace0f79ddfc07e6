package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/boutique-next/internal/config"
	"github.com/boutique-next/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendOrderConfirmation 给客户发送订单确认邮件
func (s *EmailService) SendOrderConfirmation(toEmail string, order *models.Order) error {
	if order == nil {
		return ErrOrderNotFound
	}
	subject, body := buildOrderConfirmationContent(order)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendOperatorNotice 给运营方发送新订单通知
func (s *EmailService) SendOperatorNotice(toEmail string, order *models.Order) error {
	if order == nil {
		return ErrOrderNotFound
	}
	subject, body := buildOperatorNoticeContent(order)
	return s.sendTextEmail(toEmail, subject, body)
}

// 邮件为法语纯文本，金额统一走 FormatXAF
func buildOrderConfirmationContent(order *models.Order) (string, string) {
	subject := fmt.Sprintf("Confirmation de votre commande %s", shortOrderRef(order.ID))
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Bonjour %s,\n\n", order.CustomerName)
	buf.WriteString("Merci pour votre commande ! Voici le récapitulatif :\n\n")
	buf.WriteString(buildOrderSummary(order))
	fmt.Fprintf(&buf, "\nFrais de livraison : %s\n", FormatXAF(order.ShippingAmount))
	fmt.Fprintf(&buf, "Total : %s\n\n", FormatXAF(order.TotalAmount))
	buf.WriteString("Nous vous contacterons pour la livraison.\n")
	return subject, buf.String()
}

func buildOperatorNoticeContent(order *models.Order) (string, string) {
	subject := fmt.Sprintf("Nouvelle commande %s", shortOrderRef(order.ID))
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Nouvelle commande de %s\n", order.CustomerName)
	fmt.Fprintf(&buf, "Email : %s\n", order.CustomerEmail)
	fmt.Fprintf(&buf, "Téléphone : %s\n\n", order.CustomerPhone)
	buf.WriteString(buildOrderSummary(order))
	fmt.Fprintf(&buf, "\nFrais de livraison : %s\n", FormatXAF(order.ShippingAmount))
	fmt.Fprintf(&buf, "Total : %s\n", FormatXAF(order.TotalAmount))
	return subject, buf.String()
}

func buildOrderSummary(order *models.Order) string {
	var buf bytes.Buffer
	for idx, item := range order.Items {
		fmt.Fprintf(&buf, "%d. %s (%s, %s) x%d : %s\n",
			idx+1,
			item.ProductName,
			item.Size,
			item.Color,
			item.Quantity,
			FormatXAF(item.TotalPrice()),
		)
	}
	return buf.String()
}

// shortOrderRef 邮件主题里用 UUID 前 8 位作为订单参考号
func shortOrderRef(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
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
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/boutique-next/internal/config"
	"github.com/boutique-next/internal/models"
)

func sampleOrder() *models.Order {
	return &models.Order{
		ID:             "a1b2c3d4-0000-0000-0000-000000000000",
		CustomerName:   "Awa Ndiaye",
		CustomerEmail:  "awa@example.com",
		CustomerPhone:  "+237 690 00 00 00",
		ShippingAmount: models.NewMoneyFromInt(1000),
		TotalAmount:    models.NewMoneyFromInt(31000),
		Items: []models.OrderItem{
			{
				ProductName: "Veste en jean",
				Size:        "M",
				Color:       "Bleu",
				UnitPrice:   models.NewMoneyFromInt(15000),
				Quantity:    2,
			},
		},
	}
}

func TestOrderConfirmationContent(t *testing.T) {
	subject, body := buildOrderConfirmationContent(sampleOrder())
	if !strings.Contains(subject, "A1B2C3D4") {
		t.Fatalf("subject must carry the short order ref: %q", subject)
	}
	if !strings.Contains(body, "Bonjour Awa Ndiaye") {
		t.Fatalf("body must greet the customer: %q", body)
	}
	if !strings.Contains(body, "1. Veste en jean (M, Bleu) x2") {
		t.Fatalf("body must list the order line: %q", body)
	}
	if !strings.Contains(body, "Frais de livraison") || !strings.Contains(body, "Total") {
		t.Fatalf("body must include shipping and total: %q", body)
	}
	if !strings.Contains(body, "FCFA") {
		t.Fatalf("amounts must be formatted in FCFA: %q", body)
	}
}

func TestOperatorNoticeContent(t *testing.T) {
	subject, body := buildOperatorNoticeContent(sampleOrder())
	if !strings.Contains(subject, "Nouvelle commande") {
		t.Fatalf("unexpected subject: %q", subject)
	}
	if !strings.Contains(body, "awa@example.com") || !strings.Contains(body, "+237 690 00 00 00") {
		t.Fatalf("operator notice must carry customer contact: %q", body)
	}
	if !strings.Contains(body, "Veste en jean") {
		t.Fatalf("operator notice must list items: %q", body)
	}
}

func TestSendOrderConfirmationGuards(t *testing.T) {
	disabled := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := disabled.SendOrderConfirmation("awa@example.com", sampleOrder()); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}

	unconfigured := NewEmailService(&config.EmailConfig{Enabled: true})
	if err := unconfigured.SendOrderConfirmation("awa@example.com", sampleOrder()); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}

	configured := NewEmailService(&config.EmailConfig{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "boutique@example.com",
	})
	if err := configured.SendOrderConfirmation("not-an-email", sampleOrder()); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if err := configured.SendOrderConfirmation("awa@example.com", nil); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for nil order, got %v", err)
	}
}

func TestFormatXAF(t *testing.T) {
	got := FormatXAF(models.NewMoneyFromInt(15000))
	if !strings.HasSuffix(got, " FCFA") {
		t.Fatalf("expected FCFA suffix, got %q", got)
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, got)
	if digits != "15000" {
		t.Fatalf("expected digits 15000, got %q from %q", digits, got)
	}
	if !strings.HasPrefix(got, "15") || strings.HasPrefix(got, "15000") {
		t.Fatalf("thousands must be grouped the French way: %q", got)
	}

	if got := FormatXAF(models.NewMoneyFromInt(500)); !strings.HasPrefix(got, "500") {
		t.Fatalf("small amounts must not be grouped: %q", got)
	}
}

package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/pizzaorder-next/internal/config"
	"github.com/pizzaorder-next/internal/models"

	"github.com/shopspring/decimal"
)

func TestBuildOrderStatusContent(t *testing.T) {
	amount := models.NewMoneyFromDecimal(decimal.NewFromFloat(123.5))

	tests := []struct {
		name                string
		locale              string
		status              string
		wantSubjectContains []string
		wantBodyContains    []string
	}{
		{
			name:   "confirmed_he",
			locale: "he",
			status: "confirmed",
			wantSubjectContains: []string{
				"עדכון הזמנה",
				"PO-1001",
			},
			wantBodyContains: []string{
				"אושרה",
				"123.50 ILS",
			},
		},
		{
			name:   "preparing_en",
			locale: "en",
			status: "preparing",
			wantSubjectContains: []string{
				"Order PO-1001 update",
			},
			wantBodyContains: []string{
				"being prepared",
				"123.50 ILS",
			},
		},
		{
			name:   "unknown_status_falls_through",
			locale: "en",
			status: "teleported",
			wantBodyContains: []string{
				"Status: teleported",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			subject, body := buildOrderStatusContent(OrderStatusEmailInput{
				OrderNo:  "PO-1001",
				Status:   tc.status,
				Amount:   amount,
				Currency: "ILS",
			}, tc.locale)

			for _, want := range tc.wantSubjectContains {
				if !strings.Contains(subject, want) {
					t.Fatalf("subject %q should contain %q", subject, want)
				}
			}
			for _, want := range tc.wantBodyContains {
				if !strings.Contains(body, want) {
					t.Fatalf("body %q should contain %q", body, want)
				}
			}
		})
	}
}

func TestSendOrderStatusEmailNotConfigured(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	err := svc.SendOrderStatusEmail("user@example.com", OrderStatusEmailInput{
		OrderNo: "PO-1",
		Status:  "pending",
	}, "en")
	if !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("want ErrEmailServiceNotConfigured got %v", err)
	}
}

func TestBuildEmailMessageHeaders(t *testing.T) {
	msg := buildEmailMessage("Pizza <shop@example.com>", "user@example.com", "Order PO-1 update", "hello")
	if !strings.Contains(msg, "Subject: Order PO-1 update\r\n") {
		t.Fatalf("subject header missing: %q", msg)
	}
	if !strings.Contains(msg, "To: user@example.com\r\n") {
		t.Fatalf("to header missing: %q", msg)
	}
	if !strings.HasSuffix(msg, "hello") {
		t.Fatalf("body should be last: %q", msg)
	}
}

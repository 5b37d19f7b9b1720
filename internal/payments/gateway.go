package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChargeResult carries the gateway outcome of a charge
type ChargeResult struct {
	TransactionID string
	ReceiptURL    string
	PaidAt        time.Time
}

// RefundResult carries the gateway outcome of a refund
type RefundResult struct {
	RefundID            string
	RefundTransactionID string
	RefundedAt          time.Time
}

// Gateway abstracts the external payment processor. The production system
// talks to a PG aggregator; tests swap in a failing fake.
type Gateway interface {
	Charge(ctx context.Context, amount float64, currency string, method Method) (*ChargeResult, error)
	Refund(ctx context.Context, transactionID string, amount float64) (*RefundResult, error)
}

// mockGateway approves every charge and refund, generating transaction ids
// locally. Stands in for the real processor in development.
type mockGateway struct{}

func NewMockGateway() Gateway {
	return &mockGateway{}
}

func (g *mockGateway) Charge(ctx context.Context, amount float64, currency string, method Method) (*ChargeResult, error) {
	now := time.Now()
	txnID := generateTransactionID("TXN")
	return &ChargeResult{
		TransactionID: txnID,
		ReceiptURL:    fmt.Sprintf("https://receipts.atelier.local/%s", txnID),
		PaidAt:        now,
	}, nil
}

func (g *mockGateway) Refund(ctx context.Context, transactionID string, amount float64) (*RefundResult, error) {
	now := time.Now()
	return &RefundResult{
		RefundID:            generateTransactionID("RFD"),
		RefundTransactionID: generateTransactionID("TXN"),
		RefundedAt:          now,
	}, nil
}

// generateTransactionID generates a mock transaction id
func generateTransactionID(prefix string) string {
	timestamp := time.Now().Unix()
	id := uuid.New().String()
	shortID := strings.ReplaceAll(id, "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s", prefix, timestamp, strings.ToUpper(shortID))
}

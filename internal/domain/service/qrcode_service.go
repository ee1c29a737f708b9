package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing.
// BookNest encodes order IDs so a pickup point can scan a receipt.
type QRCodeService interface {
	// GenerateOrderQR generates a PNG QR code identifying an order.
	GenerateOrderQR(orderID uuid.UUID) ([]byte, error)

	// ParseOrderQR parses QR code data and returns the order ID.
	ParseOrderQR(qrData string) (uuid.UUID, error)
}

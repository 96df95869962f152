package qrcode

import (
	qrcode "github.com/skip2/go-qrcode"
)

// Creator renders qr code images for grid cells.
type Creator struct {
}

// NewCreator ...
func NewCreator() *Creator {
	return &Creator{}
}

// Create returns png bytes of a size x size qr code encoding payload.
func (c *Creator) Create(payload string, size int) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, size)
}

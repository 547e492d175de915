package service

import (
	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator renders the chat handoff link as a PNG so a desktop
// visitor can continue the order on a phone.
type DefaultQRGenerator struct {
	Size int
}

func (g DefaultQRGenerator) Generate(link string) ([]byte, error) {
	size := g.Size
	if size == 0 {
		size = 256
	}
	return qrcode.Encode(link, qrcode.Medium, size)
}

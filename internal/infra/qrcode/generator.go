package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// 注文追跡ページへのQRコード（PNG）を作る
type Generator struct {
	BaseURL string
	Size    int
}

func NewGenerator(baseURL string) Generator {
	return Generator{BaseURL: baseURL, Size: 256}
}

func (g Generator) TrackingURL(orderID int64) string {
	return fmt.Sprintf("%s/orders/%d", g.BaseURL, orderID)
}

func (g Generator) Generate(orderID int64) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.TrackingURL(orderID), qrcode.Medium, size)
}

package qrcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_TrackingURL(t *testing.T) {
	g := NewGenerator("https://foodie.example")
	assert.Equal(t, "https://foodie.example/orders/42", g.TrackingURL(42))
}

func TestGenerator_GeneratePNG(t *testing.T) {
	png, err := NewGenerator("http://localhost:3000").Generate(1)
	require.NoError(t, err)

	// PNGシグネチャ
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}))
}

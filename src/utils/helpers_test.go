package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		token := RandomToken(60)
		assert.Len(t, token, 60)
		assert.False(t, seen[token], "token repeated")
		seen[token] = true
		for _, r := range token {
			assert.Contains(t, tokenAlphabet, string(r))
		}
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secreto123")
	assert.Nil(t, err)
	assert.NotEqual(t, "secreto123", hash)
	assert.True(t, CheckPassword(hash, "secreto123"))
	assert.False(t, CheckPassword(hash, "secreto124"))
}

func TestTableNumber(t *testing.T) {
	assert.Equal(t, "001", TableNumber(1))
	assert.Equal(t, "042", TableNumber(42))
	assert.Equal(t, "120", TableNumber(120))
}

func TestNewQRCodeUnique(t *testing.T) {
	a := NewQRCode()
	b := NewQRCode()
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}

func TestRenderQRImage(t *testing.T) {
	image, err := RenderQRImage("http://localhost:3000/menu/abc")
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(image, "data:image/png;base64,"))
	assert.Greater(t, len(image), len("data:image/png;base64,"))
}

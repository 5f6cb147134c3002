package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// AccessTokenBytes adalah jumlah byte entropy untuk access token meja.
// Minimal 18 byte supaya token tidak bisa ditebak.
const AccessTokenBytes = 24

// GenerateOpaqueToken -> token acak URL-safe dengan n byte entropy.
func GenerateOpaqueToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// TruncateRunes memotong s maksimal n karakter (bukan byte, supaya aman
// untuk input multi-byte).
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

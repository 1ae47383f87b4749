package service

import (
	"io"
	"math"
	"strings"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomCode draws n characters uniformly from codeAlphabet. Bytes at or above the
// largest multiple of the alphabet size are rejected so no character is favoured.
func randomCode(r io.Reader, n int) (string, error) {
	limit := byte(256 - 256%len(codeAlphabet))
	var sb strings.Builder
	sb.Grow(n)

	buf := make([]byte, n)
	for sb.Len() < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			sb.WriteByte(codeAlphabet[int(b)%len(codeAlphabet)])
			if sb.Len() == n {
				break
			}
		}
	}
	return sb.String(), nil
}

// roundMoney keeps two decimal places.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// confirmationPrefix is printed on every guest-facing booking code.
const confirmationPrefix = "CB"

// RandomCode returns n characters drawn from A-Z0-9 using crypto/rand with
// rand.Int to avoid modulo bias.
func RandomCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(codeCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeCharset[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateConfirmationCode produces a human-quotable reservation code:
// prefix + the last six digits of the current unix milliseconds + five
// random characters, e.g. "CB739281K4XQ7". It is a lookup handle, not a
// security token; the store's unique index catches the rare collision and
// the caller retries.
func GenerateConfirmationCode() (string, error) {
	millis := time.Now().UnixMilli()
	stamp := fmt.Sprintf("%06d", millis%1000000)

	suffix, err := RandomCode(5)
	if err != nil {
		return "", err
	}
	return confirmationPrefix + stamp + suffix, nil
}

package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Ambiguous characters (0/O, 1/I/L) are left out so codes survive being
// read over the phone at the front desk.
const referenceCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func GenerateReferenceToken(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(referenceCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(referenceCharset[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateReservationReference produces the human-facing booking code,
// e.g. RES-7KQ2M9XW.
func GenerateReservationReference() (string, error) {
	code, err := GenerateReferenceToken(8)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("RES-%s", code), nil
}

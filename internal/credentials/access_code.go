package credentials

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// AccessCodeLength is the number of digits in a family access code
const AccessCodeLength = 8

const digits = "0123456789"

// GenerateAccessCode returns AccessCodeLength random decimal digits.
// Digits are drawn independently, so leading zeros and repeats occur.
func GenerateAccessCode() (string, error) {
	code := make([]byte, AccessCodeLength)
	max := big.NewInt(int64(len(digits)))

	for i := range code {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = digits[num.Int64()]
	}

	return string(code), nil
}

// NormalizeAccessCode strips the display separator (e.g. "1234-5678") and
// surrounding whitespace from user input.
func NormalizeAccessCode(input string) string {
	return strings.TrimSpace(strings.Replace(input, "-", "", 1))
}

// FormatAccessCode renders a code as two dash-separated halves for display
func FormatAccessCode(code string) string {
	if len(code) != AccessCodeLength {
		return code
	}
	return code[:4] + "-" + code[4:]
}

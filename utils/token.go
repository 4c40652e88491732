package utils

import (
	"math/rand"
	"time"
)

var tokenRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateNumericCode returns a random digit string, e.g. for MFA mail codes.
func GenerateNumericCode(length int) string {
	const digits = "0123456789"
	code := make([]byte, length)
	for i := range code {
		code[i] = digits[tokenRand.Intn(len(digits))]
	}
	return string(code)
}

package token

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NewNumericCode generates a cryptographically random zero-padded numeric code of n digits.
func NewNumericCode(n int) (string, error) {
	if n <= 0 || n > 18 {
		return "", fmt.Errorf("generate code: invalid length %d", n)
	}
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", n, v.Int64()), nil
}

package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateEmployeeID generates a random badge number in the format EMP-NNNNNN.
func GenerateEmployeeID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate employee id: %w", err)
	}
	return fmt.Sprintf("EMP-%d", n.Int64()+100000), nil
}

package cryptox

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// DefaultPasswordLength is used by the CLI when no length is configured.
const DefaultPasswordLength = 16

// passwordAlphabet leaves out look-alike characters (I, O, l, 0, 1).
const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789!@#$%^&*"

// GeneratePassword returns a random password of the given length drawn
// uniformly from passwordAlphabet.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("password length must be positive")
	}

	max := big.NewInt(int64(len(passwordAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}

package utils

import (
	"crypto/rand"
	"math/big"
)

const provisionalAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

// GenerateProvisionalPassword returns a 10-char random password from an
// alphabet without look-alike characters.
func GenerateProvisionalPassword() string {
	out := make([]byte, 10)
	max := big.NewInt(int64(len(provisionalAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		out[i] = provisionalAlphabet[n.Int64()]
	}
	return string(out)
}

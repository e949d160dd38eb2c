package utils

import (
	"crypto/rand"
	"math/big"
)

// GenerateCode returns a numeric one-time code of the given length, drawn
// uniformly from [0, 10^length) and left-padded with zeros. crypto/rand is
// non-negotiable here; the code is the only proof of identifier ownership.
func GenerateCode(length int) string {
	if length <= 0 {
		length = 6
	}
	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		panic(err)
	}

	code := n.String()
	for len(code) < length {
		code = "0" + code
	}
	return code
}

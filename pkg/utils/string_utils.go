package utils

import (
	"fmt"
	"math/rand/v2"
)

const randomSuffixLength = 6

// GenerateRandomName returns the prefix followed by a random, lowercase alphanumeric suffix.
// The result is a valid Kubernetes resource name as long as the prefix is.
func GenerateRandomName(prefix string) string {
	charset := []byte("abcdefghijklmnopqrstuvwxyz0123456789")
	str := make([]byte, randomSuffixLength)
	for i := range str {
		str[i] = charset[rand.IntN(len(charset))]
	}
	if prefix == "" {
		// Names must start with a letter
		str[0] = charset[rand.IntN(26)]
		return string(str)
	}
	return fmt.Sprintf("%s-%s", prefix, str)
}

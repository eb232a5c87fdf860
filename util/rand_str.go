// Package util contains any functions used across the application that
// don't match any other package
package util

import (
	"math/rand"
	"time"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var src = rand.New(rand.NewSource(time.Now().UnixNano()))

// RandStr returns a random alphanumeric string of length n. Not
// cryptographically secure, used for request IDs only
func RandStr(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[src.Intn(len(charset))]
	}

	return string(b)
}

// Package id generates opaque bearer tokens for user records.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// tokenLength is the NanoID length used for bearer tokens. Longer than the
// default 21 characters since tokens are long-lived credentials.
const tokenLength = 32

// NewToken creates an opaque bearer token.
//
// NanoIDs are URL-safe and use a larger alphabet than hex, so 32 characters
// gives comfortably more entropy than a UUID.
//
// Returns an error if the system has insufficient entropy for secure random
// generation.
func NewToken() (string, error) {
	token, err := gonanoid.New(tokenLength)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

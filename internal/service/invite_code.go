package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const inviteCodeBytes = 4

// InviteCodeGenerator yields candidate class invite codes.
type InviteCodeGenerator func() (string, error)

// RandomInviteCode returns 4 random bytes as 8 lowercase hex characters.
func RandomInviteCode() (string, error) {
	buf := make([]byte, inviteCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

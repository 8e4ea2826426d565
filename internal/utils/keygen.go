package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateToken generates a random token of size random bytes with the given
// prefix. Format: prefix_randomhex
func GenerateToken(prefix string, size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b)), nil
}

// GenerateAdminToken generates an admin panel token: bs_admin_xxx.
// The result stays under bcrypt's 72 byte input limit.
func GenerateAdminToken() (string, error) {
	return GenerateToken("bs_admin", 24) // 48 char hex
}

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	scryptN   = 16384
	scryptR   = 8
	scryptP   = 1
	keyLength = 64
	saltBytes = 16
)

// HashPassword derives a scrypt key from the password under a fresh random
// salt and encodes the pair as "hex(key).hex(salt)".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}
	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

// VerifyPassword re-derives the key with the stored salt and compares in
// constant time. Raw strings are never compared.
func VerifyPassword(supplied, stored string) (bool, error) {
	parts := strings.SplitN(stored, ".", 2)
	if len(parts) != 2 {
		return false, fmt.Errorf("malformed password hash")
	}
	storedKey, err := hex.DecodeString(parts[0])
	if err != nil {
		return false, fmt.Errorf("malformed password hash: %w", err)
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, fmt.Errorf("malformed password hash: %w", err)
	}
	suppliedKey, err := scrypt.Key([]byte(supplied), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return false, fmt.Errorf("derive key: %w", err)
	}
	if len(storedKey) != len(suppliedKey) {
		return false, nil
	}
	return subtle.ConstantTimeCompare(storedKey, suppliedKey) == 1, nil
}

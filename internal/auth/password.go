package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Parameters are fixed for compatibility with credentials migrated from the
// previous deployment: PBKDF2-SHA512, 10000 iterations, 64-byte derived key,
// 16-byte random salt, all hex-encoded.
const (
	pbkdf2Iterations = 10000
	pbkdf2KeyLen     = 64
	saltBytes        = 16
)

type PasswordHash struct {
	Salt string
	Hash string
}

func HashPassword(password string) (PasswordHash, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return PasswordHash{}, fmt.Errorf("generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)

	return PasswordHash{
		Salt: saltHex,
		Hash: derive(password, saltHex),
	}, nil
}

func VerifyPassword(password, salt, hash string) bool {
	if salt == "" || hash == "" {
		return false
	}
	return hmac.Equal([]byte(derive(password, salt)), []byte(hash))
}

func derive(password, saltHex string) string {
	key := pbkdf2.Key([]byte(password), []byte(saltHex), pbkdf2Iterations, pbkdf2KeyLen, sha512.New)
	return hex.EncodeToString(key)
}

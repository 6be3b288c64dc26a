package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-SHA256 parameters
const (
	DefaultIterations = 120_000
	SaltLength        = 16
	KeyLength         = 32

	schemeName = "pbkdf2-sha256"
)

// ErrInvalidHash indicates the encoded hash cannot be parsed
var ErrInvalidHash = errors.New("invalid password hash format")

// PBKDF2Hasher hashes passwords with PBKDF2-HMAC-SHA256 and a random salt.
// Hashes are encoded as pbkdf2-sha256$<iterations>$<salt>$<key>, base64 without padding.
type PBKDF2Hasher struct {
	iterations int
}

var _ coreport.PasswordHasher = (*PBKDF2Hasher)(nil)

// NewPBKDF2Hasher creates a hasher; non-positive iterations fall back to DefaultIterations
func NewPBKDF2Hasher(iterations int) *PBKDF2Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &PBKDF2Hasher{iterations: iterations}
}

// Hash derives a key from password with a fresh salt
func (h *PBKDF2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, h.iterations, KeyLength, sha256.New)

	return fmt.Sprintf("%s$%d$%s$%s",
		schemeName,
		h.iterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the key with the stored parameters and compares in constant time
func (h *PBKDF2Hasher) Verify(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != schemeName {
		return false, ErrInvalidHash
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false, ErrInvalidHash
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(expected) == 0 {
		return false, ErrInvalidHash
	}

	computed := pbkdf2.Key([]byte(password), salt, iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/calebhs/storefront-api/internal/config"
)

// ErrMalformedHash indicates a stored password hash that cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

const (
	argon2SaltLen = 16
	argon2KeyLen  = 32
)

// PasswordHasher hashes and verifies passwords. Verification is a one-way
// comparison; the stored hash is never decoded back to a password.
type PasswordHasher interface {
	// Hash derives a salted, self-describing hash of password.
	Hash(password string) (string, error)

	// Compare checks password against a stored hash. Returns
	// ErrPasswordMismatch when they do not match.
	Compare(hashedPassword, password string) error
}

// Argon2Hasher implements PasswordHasher with argon2id. The work factors
// are embedded in each produced hash, so they can be tuned without
// invalidating previously stored passwords.
type Argon2Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
}

var _ PasswordHasher = (*Argon2Hasher)(nil)

// NewArgon2Hasher creates a hasher with the configured work factors.
func NewArgon2Hasher(cfg config.AuthConfig) *Argon2Hasher {
	return &Argon2Hasher{
		time:    cfg.Argon2Time,
		memory:  cfg.Argon2MemoryKiB,
		threads: cfg.Argon2Parallelism,
	}
}

// Hash derives an argon2id hash in the standard PHC string format:
// $argon2id$v=19$m=...,t=...,p=...$<salt>$<key>.
func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Compare re-derives the key with the parameters stored in hashedPassword
// and compares in constant time.
func (h *Argon2Hasher) Compare(hashedPassword, password string) error {
	params, salt, key, err := decodeArgon2Hash(hashedPassword)
	if err != nil {
		return err
	}

	derived := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(key)))
	if subtle.ConstantTimeCompare(key, derived) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

type argon2Params struct {
	time    uint32
	memory  uint32
	threads uint8
}

func decodeArgon2Hash(encoded string) (argon2Params, []byte, []byte, error) {
	var p argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrMalformedHash
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return p, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	return p, salt, key, nil
}

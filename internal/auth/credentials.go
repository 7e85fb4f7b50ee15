package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/bhujal/registry/internal/models"
	"github.com/bhujal/registry/internal/validation"
)

// DefaultCost is the bcrypt work factor used outside tests.
const DefaultCost = 12

// MinSecretLength is the shortest raw secret accepted.
const MinSecretLength = 6

// Hasher hashes and verifies customer secrets.
type Hasher struct {
	Cost int

	// dummy is compared against when no account matches, so unknown emails
	// cost the same bcrypt work as wrong secrets.
	dummy []byte
}

// NewHasher returns a Hasher with the given cost, or DefaultCost when cost is 0.
func NewHasher(cost int) (*Hasher, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("borewell-registry-dummy"), cost)
	if err != nil {
		return nil, fmt.Errorf("init hasher: %w", err)
	}
	return &Hasher{Cost: cost, dummy: dummy}, nil
}

// RegisterCredential hashes raw with a fresh salt.
func (h *Hasher) RegisterCredential(raw string) (string, error) {
	if len(raw) < MinSecretLength {
		return "", &validation.ValidationError{Fields: []validation.FieldError{{
			Field:  "password",
			Reason: "Password must be at least 6 characters long",
		}}}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), h.Cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", &validation.ValidationError{Fields: []validation.FieldError{{
			Field:  "password",
			Reason: "Password cannot exceed 72 bytes",
		}}}
	}
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// VerifySecret reports whether raw matches hash. A malformed hash is a mismatch.
func (h *Hasher) VerifySecret(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// BurnCompare performs a throwaway comparison for the unknown-account path.
func (h *Hasher) BurnCompare(raw string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(raw))
}

// BeforePersist prepares next for a write. A raw secret on next is hashed
// and cleared; otherwise the stored hash from old carries over unchanged.
// old may be nil for a new record.
func (h *Hasher) BeforePersist(old, next *models.Customer) error {
	if next == nil {
		return errors.New("before persist: nil customer")
	}
	if next.Password != "" {
		hash, err := h.RegisterCredential(next.Password)
		if err != nil {
			return err
		}
		next.PasswordHash = hash
		next.Password = ""
		return nil
	}
	if old != nil {
		next.PasswordHash = old.PasswordHash
	}
	if next.PasswordHash == "" {
		return errors.New("before persist: customer has no credential")
	}
	return nil
}

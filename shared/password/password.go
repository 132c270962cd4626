package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes, so longer secrets are refused
// instead of silently truncated.
const maxLength = 72

// Cost is the bcrypt work factor for new hashes. Tests may lower it.
var Cost = bcrypt.DefaultCost

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrPasswordTooLong = fmt.Errorf("password longer than %d bytes", maxLength)
)

func Hash(plain string) (string, error) {
	switch {
	case plain == "":
		return "", ErrEmptyPassword
	case len(plain) > maxLength:
		return "", ErrPasswordTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns ErrInvalidPassword for any mismatch, including empty input.
func Verify(plain, hashed string) error {
	if plain == "" || hashed == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	switch {
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	case err != nil:
		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}

// NeedsRehash reports whether hashed was produced with a cost other than Cost.
func NeedsRehash(hashed string) bool {
	cost, err := bcrypt.Cost([]byte(hashed))

	return err != nil || cost != Cost
}

package entity

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
)

// MaxNameLength is the longest username or account name in characters.
// It matches the size of the name columns.
const MaxNameLength = 64

// LookupName is the form of a name used to find an existing account or user.
// Stored names are trimmed, so lookups must trim too.
func LookupName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeAccountName trims name and checks that it can be stored
func NormalizeAccountName(name string) (string, error) {
	return normalizeName(name, errs.ErrInvalidAccountName)
}

// NormalizeUsername trims username and checks that it can be stored
func NormalizeUsername(username string) (string, error) {
	return normalizeName(username, errs.ErrInvalidUsername)
}

func normalizeName(name string, kind error) (string, error) {
	name = LookupName(name)
	if name == "" {
		return "", kind
	}
	if err := validText(name); err != nil {
		return "", fmt.Errorf("%w: %s", kind, err.Error())
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return "", fmt.Errorf("%w: %d characters, at most %d allowed", kind, n, MaxNameLength)
	}
	return name, nil
}

// ValidateNote checks that a transaction note can be stored
func ValidateNote(note string) error {
	if err := validText(note); err != nil {
		return fmt.Errorf("%w: note %s", errs.ErrInvalidNote, err.Error())
	}
	return nil
}

func validText(s string) error {
	if !utf8.ValidString(s) {
		return errors.New("is not valid UTF-8")
	}
	if strings.ContainsRune(s, 0) {
		return errors.New("contains a NUL byte")
	}
	return nil
}

package core

// PasswordHasher derives and verifies salted password hashes
type PasswordHasher interface {
	// Hash returns a self-describing encoded hash of password with a fresh salt
	Hash(password string) (string, error)
	// Verify reports whether password matches the encoded hash
	Verify(password, encoded string) (bool, error)
}

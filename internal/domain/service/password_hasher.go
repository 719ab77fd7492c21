package service

// PasswordHasher is the one-way credential hasher. Implementations must
// salt per call; two hashes of the same plaintext never match.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash.
	Check(password, hash string) bool
}

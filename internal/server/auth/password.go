package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost follows the OWASP recommendation for bcrypt (>10
// rounds); hashing takes a few hundred milliseconds on current hardware.
const DefaultBcryptCost = 12

// PasswordHasher provides one-way salted hashing and constant-time
// verification over bcrypt. The cost is injectable so tests can use a low
// cost without changing the logic under test.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given cost; a cost of 0
// falls back to DefaultBcryptCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext. The salt is generated and
// embedded by bcrypt itself.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches the stored hash.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

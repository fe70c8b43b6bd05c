package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is the fixed work factor for password hashing.
const DefaultBcryptCost = 10

// HashPassword derives a salted bcrypt digest from the plaintext password.
// Cost values below bcrypt's minimum fall back to DefaultBcryptCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = DefaultBcryptCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether password matches the stored digest. The
// comparison is constant-time inside bcrypt; a malformed digest is reported
// as a mismatch, never as an error.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

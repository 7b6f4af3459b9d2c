package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for password hashing. 12 keeps hashing around
// a quarter second on current hardware.
const BcryptCost = 12

// HashPassword hashes a password with bcrypt at BcryptCost. Safe for
// concurrent use; each call draws its own salt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the bcrypt hash. Returns
// false for a malformed hash as well as a mismatch; it never reports a match
// on error.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

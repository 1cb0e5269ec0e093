package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes the plaintext with bcrypt; the salt is generated per
// call, so two hashes of the same password differ.
func HashPassword(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	return string(b), err
}

func VerifyPassword(plain, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

package security

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for admin credentials
const PasswordCost = bcrypt.DefaultCost

// HashPassword hashes a password with a per-hash random salt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a password with its bcrypt hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

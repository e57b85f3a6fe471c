package auth

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength applies to signup, password change and reset.
const MinPasswordLength = 6

// HashPassword bcrypt-hashes a plaintext password at the default cost.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plain matches the stored digest. A nil digest
// (OAuth or provisioned account) never matches.
func CheckPassword(plain string, digest *string) bool {
	if digest == nil || *digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*digest), []byte(plain)) == nil
}

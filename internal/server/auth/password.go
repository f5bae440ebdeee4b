package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHashCost is the bcrypt cost factor. 12 puts a single verification
// in the ~100ms range on current hardware; the hash is salted per call.
const PasswordHashCost = 12

// HashPassword derives an irreversible hash of the plaintext secret. The
// caller must discard the plaintext after this returns.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
}

// CheckPassword reports whether candidate matches the stored hash.
func CheckPassword(hash []byte, candidate string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(candidate)) == nil
}

package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of plain. The cost comes from
// configuration; out-of-range values fall back to bcrypt's default so a
// misconfigured deployment still hashes at a sane strength.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
// Comparison time does not depend on where the mismatch occurs.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

package impl

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasswordServiceBcrypt verifies and produces bcrypt hashes, compatible with
// the PHP password_hash rows already in the database ($2y$ prefixed). The
// plaintext path is a migration shim for pre-hashing accounts: disabled
// unless explicitly configured, and any plaintext match demands a rehash so
// the row is upgraded on that same login.
type PasswordServiceBcrypt struct {
	cost            int
	legacyPlaintext bool
}

func NewPasswordServiceBcrypt(cost int, legacyPlaintext bool) *PasswordServiceBcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordServiceBcrypt{cost: cost, legacyPlaintext: legacyPlaintext}
}

func (p *PasswordServiceBcrypt) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (p *PasswordServiceBcrypt) Verify(password, stored string) (rehashNeeded, ok bool) {
	if password == "" || stored == "" {
		return false, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err == nil {
		// Rehash when the stored cost lags the current policy.
		if cost, err := bcrypt.Cost([]byte(stored)); err == nil && cost < p.cost {
			return true, true
		}
		return false, true
	}
	if p.legacyPlaintext && subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1 {
		return true, true
	}
	return false, false
}

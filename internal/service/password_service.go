package service

type PasswordService interface {
	Hash(password string) (string, error)
	// Verify checks password against the stored value. rehashNeeded is set
	// when the stored value should be replaced with a fresh hash on this
	// login (legacy plaintext row, or an outdated cost).
	Verify(password, stored string) (rehashNeeded, ok bool)
}

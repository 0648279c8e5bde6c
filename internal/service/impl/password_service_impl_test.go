package impl

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndVerify(t *testing.T) {
	p := NewPasswordServiceBcrypt(bcrypt.MinCost, false)

	hash, err := p.Hash("s3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt output, got %q", hash)
	}

	if rehash, ok := p.Verify("s3cret!", hash); !ok || rehash {
		t.Fatalf("expected clean match, got rehash=%v ok=%v", rehash, ok)
	}
	if _, ok := p.Verify("wrong", hash); ok {
		t.Fatal("wrong password must not verify")
	}
}

func TestPasswordEmptyInputs(t *testing.T) {
	p := NewPasswordServiceBcrypt(bcrypt.MinCost, true)

	if _, err := p.Hash(""); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
	if _, ok := p.Verify("", "stored"); ok {
		t.Fatal("empty password must not verify")
	}
	if _, ok := p.Verify("pw", ""); ok {
		t.Fatal("empty stored value must not verify")
	}
}

func TestPasswordLegacyPlaintext(t *testing.T) {
	withShim := NewPasswordServiceBcrypt(bcrypt.MinCost, true)
	withoutShim := NewPasswordServiceBcrypt(bcrypt.MinCost, false)

	rehash, ok := withShim.Verify("legacy-pw", "legacy-pw")
	if !ok || !rehash {
		t.Fatalf("shim on: expected ok with forced rehash, got rehash=%v ok=%v", rehash, ok)
	}

	if _, ok := withoutShim.Verify("legacy-pw", "legacy-pw"); ok {
		t.Fatal("shim off: plaintext match must be rejected")
	}
}

func TestPasswordCostUpgrade(t *testing.T) {
	low, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	p := NewPasswordServiceBcrypt(bcrypt.MinCost+1, false)
	rehash, ok := p.Verify("pw", string(low))
	if !ok {
		t.Fatal("expected match")
	}
	if !rehash {
		t.Fatal("expected rehash request for under-cost hash")
	}
}

func TestPasswordAcceptsPHPStyleHash(t *testing.T) {
	// password_hash emits $2y$; the verifier must treat it as plain bcrypt.
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	phpStyle := "$2y$" + string(hash[4:])

	p := NewPasswordServiceBcrypt(bcrypt.MinCost, false)
	if _, ok := p.Verify("pw", phpStyle); !ok {
		t.Fatal("expected $2y$ hash to verify")
	}
}

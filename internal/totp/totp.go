// Package totp implements RFC 6238 time-based one-time passwords with
// HMAC-SHA1 as the pseudorandom function. Verification is a pure function of
// (secret, code, wall-clock time): no I/O, no retries, at most 2*window+1
// HMAC evaluations per call.
package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/binary"
	"strconv"
	"strings"
	"time"
)

const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// DecodeBase32 decodes an RFC 4648 base32 string. Decoding is deliberately
// permissive: case-insensitive, and any byte outside the alphabet (padding,
// whitespace, dashes from copy-pasted secrets) is skipped rather than
// rejected. Bits are shifted into an accumulator five at a time and a byte is
// emitted whenever eight or more are buffered.
func DecodeBase32(s string) []byte {
	s = strings.ToUpper(s)
	out := make([]byte, 0, len(s)*5/8)
	var buffer, bits uint
	for i := 0; i < len(s); i++ {
		val := strings.IndexByte(base32Alphabet, s[i])
		if val < 0 {
			continue
		}
		buffer = buffer<<5 | uint(val)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buffer>>bits))
		}
	}
	return out
}

// Verifier holds the code parameters. The zero value is not useful; use
// Default or fill every field.
type Verifier struct {
	Window int           // accepted drift in steps either side of now
	Digits int           // decimal digits per code
	Period time.Duration // length of one time step
	Now    func() time.Time
}

// Default mirrors the authenticator-app conventions: 6 digits, 30-second
// steps, one step of tolerated clock skew in each direction.
func Default() Verifier {
	return Verifier{Window: 1, Digits: 6, Period: 30 * time.Second, Now: time.Now}
}

// Verify reports whether code matches the secret at any step within the
// window. It fails closed on an empty secret and compares candidates in
// constant time so a near-miss cannot be distinguished from a far one.
func (v Verifier) Verify(secret, code string) bool {
	if secret == "" {
		return false
	}
	key := DecodeBase32(secret)
	step := v.Now().Unix() / int64(v.Period/time.Second)
	for i := -int64(v.Window); i <= int64(v.Window); i++ {
		candidate := hotp(key, uint64(step+i), v.Digits)
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(code)) == 1 {
			return true
		}
	}
	return false
}

// Code returns the code valid at the given instant. Exposed for secret
// provisioning flows and tests; authentication goes through Verify.
func (v Verifier) Code(secret string, at time.Time) string {
	step := at.Unix() / int64(v.Period/time.Second)
	return hotp(DecodeBase32(secret), uint64(step), v.Digits)
}

// Verify checks a code against the default parameters.
func Verify(secret, code string) bool {
	return Default().Verify(secret, code)
}

// hotp computes an RFC 4226 code: the counter is packed as an 8-byte
// big-endian message, HMAC-SHA1'd with the key, dynamically truncated to a
// 31-bit integer and reduced modulo 10^digits.
func hotp(key []byte, counter uint64, digits int) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0F
	binCode := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7FFFFFFF

	mod := uint32(1)
	for i := 0; i < digits; i++ {
		mod *= 10
	}
	s := strconv.FormatUint(uint64(binCode%mod), 10)
	if len(s) < digits {
		s = strings.Repeat("0", digits-len(s)) + s
	}
	return s
}

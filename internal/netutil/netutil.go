package netutil

import (
	"net/netip"
	"strings"
	"unicode/utf8"
)

const MaxUserAgentLength = 512

// NormalizeIP takes either a bare IP string or an address that may include a
// port (e.g. "192.0.2.4:1234" or "[2001:db8::1]:443") and returns the
// canonical IP portion without zone identifiers; audit rows store the result.
// The second return value indicates whether the input parsed as an address.
func NormalizeIP(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if addrPort, err := netip.ParseAddrPort(raw); err == nil {
		addr := addrPort.Addr().WithZone("")
		if addr.IsValid() {
			return addr.String(), true
		}
	}
	if addr, err := netip.ParseAddr(raw); err == nil {
		addr = addr.WithZone("")
		if addr.IsValid() {
			return addr.String(), true
		}
	}
	// Bracketed IPv6 with a non-numeric port section (e.g. "[::1]:port").
	if strings.HasPrefix(raw, "[") && strings.Contains(raw, "]") {
		host := raw[1:strings.LastIndex(raw, "]")]
		if addr, err := netip.ParseAddr(host); err == nil {
			addr = addr.WithZone("")
			if addr.IsValid() {
				return addr.String(), true
			}
		}
	}
	// Last resort: strip the trailing colon section and parse again.
	if idx := strings.LastIndex(raw, ":"); idx > 0 {
		if addr, err := netip.ParseAddr(raw[:idx]); err == nil {
			addr = addr.WithZone("")
			if addr.IsValid() {
				return addr.String(), true
			}
		}
	}
	return raw, false
}

// TruncateUserAgent trims overly long user agents to MaxUserAgentLength runes.
func TruncateUserAgent(ua string) string {
	if utf8.RuneCountInString(ua) <= MaxUserAgentLength {
		return ua
	}
	var builder strings.Builder
	builder.Grow(len(ua))
	count := 0
	for _, r := range ua {
		builder.WriteRune(r)
		count++
		if count >= MaxUserAgentLength {
			break
		}
	}
	return builder.String()
}

package sms

import "strings"

// NormalizePhone canonicalizes Kenyan phone numbers to +254XXXXXXXXX form.
// Accepted shapes: local (0712345678), international (+254712345678 or
// 254712345678), and bare nine-digit (712345678). Anything else passes
// through unchanged so a malformed number fails at the provider, not here.
func NormalizePhone(raw string) string {
	n := strings.TrimSpace(raw)
	n = strings.ReplaceAll(n, " ", "")
	n = strings.ReplaceAll(n, "-", "")

	switch {
	case strings.HasPrefix(n, "+254") && len(n) == 13:
		return n
	case strings.HasPrefix(n, "254") && len(n) == 12:
		return "+" + n
	case strings.HasPrefix(n, "0") && len(n) == 10:
		return "+254" + n[1:]
	case len(n) == 9 && allDigits(n):
		return "+254" + n
	default:
		return raw
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

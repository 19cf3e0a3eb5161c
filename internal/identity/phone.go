package identity

import "strings"

// CanonicalPhone normalizes a raw phone number so that every spelling of the
// same number keys the same records: whitespace is stripped, and numbers
// without an international prefix get leading zeros removed and the default
// country code prepended.
func CanonicalPhone(raw, defaultCountryCode string) string {
	var b strings.Builder
	for _, r := range raw {
		switch r {
		case ' ', '\t', '-', '(', ')':
			continue
		}
		b.WriteRune(r)
	}
	phone := b.String()
	if phone == "" {
		return ""
	}
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	phone = strings.TrimLeft(phone, "0")
	return "+" + defaultCountryCode + phone
}

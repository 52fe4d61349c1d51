// utils/phone.go
package utils

import "strings"

// FormatUKPhone normalizes a UK phone number to E.164 (+447xxxxxxxxx).
// A local-format "07..." number gains the +44 prefix; a bare "44..." number
// gains the "+"; anything already in E.164 passes through unchanged.
func FormatUKPhone(phone string) string {
	cleaned := stripPhone(phone)
	if strings.HasPrefix(cleaned, "07") {
		cleaned = "+44" + cleaned[1:]
	}
	if strings.HasPrefix(cleaned, "44") {
		cleaned = "+" + cleaned
	}
	return cleaned
}

// IsValidUKMobile reports whether phone looks like a UK mobile number,
// in either local (07...) or international (+447...) format.
func IsValidUKMobile(phone string) bool {
	cleaned := stripPhone(phone)
	if strings.HasPrefix(cleaned, "+44") {
		cleaned = "0" + cleaned[3:]
	}
	if len(cleaned) != 11 || !strings.HasPrefix(cleaned, "07") {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func stripPhone(phone string) string {
	r := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	return r.Replace(phone)
}

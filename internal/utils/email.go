package utils

import "strings"

// NormalizeEmail trims surrounding whitespace and lower-cases the domain
// part of an address. The local part keeps its case: "Ada@Example.COM"
// becomes "Ada@example.com".
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")

	if at < 0 {
		return email
	}

	return email[:at+1] + strings.ToLower(email[at+1:])
}

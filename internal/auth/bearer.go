package auth

import "strings"

// ParseBearer extracts the token value from an Authorization header.
// Returns "" when the header is missing or not a bearer credential.
func ParseBearer(authz string) string {
	const prefix = "bearer "
	if len(authz) < len(prefix) || !strings.EqualFold(authz[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(authz[len(prefix):])
}

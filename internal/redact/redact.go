// Package redact scrubs sensitive information from strings before they are
// logged. Error messages bubbling up from the database layer or the auth
// stack can carry connection strings, credentials, or tokens; Error and
// String strip those so log output stays safe to ship.
package redact

import "regexp"

// Placeholder replaces any matched sensitive fragment.
const Placeholder = "[REDACTED]"

var (
	// Database connection strings with inline credentials.
	connStringRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Password assignments in config or query strings.
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// Secrets and API keys.
	secretRegex = regexp.MustCompile(`(?i)(secret|api[_-]?key|token)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// Three-part base64url JWTs.
	jwtRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Bcrypt hashes, which encode the salt inline.
	bcryptRegex = regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`)
)

// String returns s with any recognized sensitive fragments replaced by
// Placeholder. The input is never modified.
func String(s string) string {
	if s == "" {
		return s
	}

	s = connStringRegex.ReplaceAllString(s, "$1://"+Placeholder+"@")
	s = passwordRegex.ReplaceAllString(s, "$1$2"+Placeholder)
	s = secretRegex.ReplaceAllString(s, "$1$2"+Placeholder)
	s = jwtRegex.ReplaceAllString(s, Placeholder)
	s = bcryptRegex.ReplaceAllString(s, Placeholder)

	return s
}

// Error returns the redacted message of err, or "" if err is nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

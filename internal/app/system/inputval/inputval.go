// internal/app/system/inputval/inputval.go
package inputval

import "regexp"

// emailRe accepts dot-atom local parts and dot-separated domain labels.
// Single-label domains are allowed for dev and test environments.
// Display-name forms ("Name <user@host>") are rejected.
var emailRe = regexp.MustCompile(
	`^[A-Za-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(\.[A-Za-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*` +
		`@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*$`)

// IsValidEmail reports whether s is a plausible email address.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

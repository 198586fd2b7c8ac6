// File: internal/lead/phone.go
package lead

import (
	"regexp"
	"strings"
)

// Italian mobile numbers: optional +39 country prefix, a leading 3, then 8
// or 9 more digits (9-10 local digits in total).
var phonePattern = regexp.MustCompile(`^(\+39)?3\d{8,9}$`)

// IsValidPhone reports whether the candidate string is an acceptable phone
// number. Surrounding whitespace is trimmed before matching.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

package errors

import (
	"strings"
	"unicode"
)

// ValidateMemberLabel validates a pedigree member label.
//
// The validation rules are intentionally conservative:
//   - No empty labels
//   - No control characters
//   - No leading or trailing whitespace
//   - Maximum length of 256 characters
func ValidateMemberLabel(label string) error {
	if label == "" {
		return New(ErrCodeStructural, "member label cannot be empty")
	}

	if len(label) > 256 {
		return New(ErrCodeStructural, "member label too long (max 256 characters)")
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeStructural, "member label contains control characters: %q", label)
		}
	}

	if strings.TrimSpace(label) != label {
		return New(ErrCodeStructural, "member label has surrounding whitespace: %q", label)
	}

	return nil
}

// ValidateMarkerName validates a marker name.
// An empty name is allowed (markers may be anonymous); a non-empty name
// must not consist solely of digits, since purely numeric names are
// indistinguishable from marker indices in selection operations.
func ValidateMarkerName(name string) error {
	if name == "" {
		return nil
	}

	if len(name) > 256 {
		return New(ErrCodeNameFormat, "marker name too long (max 256 characters)")
	}

	allDigits := true
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeNameFormat, "marker name contains control characters: %q", name)
		}
		if r < '0' || r > '9' {
			allDigits = false
		}
	}
	if allDigits {
		return New(ErrCodeNameFormat, "marker name cannot be purely numeric: %q", name)
	}

	return nil
}

package intent

import (
	"regexp"
	"strings"
)

var (
	emailSearchRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	emailExactRe  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

	phoneCandidateRe = regexp.MustCompile(`\+?\d[\d\s\-.()]{7,}\d`)
	phoneSepRe       = regexp.MustCompile(`[\s\-.()]`)

	idDashRe      = regexp.MustCompile(`\b[A-Z]{2,5}-\d{2,6}\b`)
	idDashExactRe = regexp.MustCompile(`^[A-Z]{2,5}-\d{2,6}$`)
	idAlnumRe     = regexp.MustCompile(`\b[A-Z0-9]{6,12}\b`)

	// Ordinary uppercase-looking words that must never be mistaken for an
	// identifier when users write in caps.
	idSkipWords = []string{"NUMBER", "STATUS", "COMPLAINT", "DETAILS", "PLEASE", "URGENT"}
)

// FindEmail returns the first email address in text, or "".
func FindEmail(text string) string {
	return emailSearchRe.FindString(text)
}

// ValidEmail reports whether s as a whole is an email address.
func ValidEmail(s string) bool {
	return emailExactRe.MatchString(strings.TrimSpace(s))
}

// NormalizePhone strips separators and validates the remainder: exactly ten
// digits, or a "+" followed by a 1-3 digit country code and ten digits. It
// returns the cleaned number and whether it is well formed.
func NormalizePhone(s string) (string, bool) {
	cleaned := phoneSepRe.ReplaceAllString(strings.TrimSpace(s), "")
	if cleaned == "" {
		return "", false
	}

	digits := cleaned
	plus := strings.HasPrefix(cleaned, "+")
	if plus {
		digits = cleaned[1:]
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", false
		}
	}

	if !plus && len(digits) == 10 {
		return digits, true
	}
	if plus && len(digits) >= 11 && len(digits) <= 13 {
		return cleaned, true
	}
	return "", false
}

// FindPhone returns the first well-formed phone number in text, or "".
func FindPhone(text string) string {
	for _, candidate := range phoneCandidateRe.FindAllString(text, -1) {
		if normalized, ok := NormalizePhone(candidate); ok {
			return normalized
		}
	}
	return ""
}

// FindComplaintID scans text for a complaint identifier. Dash-form IDs like
// "ABC-999" are preferred; otherwise a 6+ character alphanumeric token
// containing both a letter and a digit counts, skipping common words.
func FindComplaintID(text string) string {
	upper := strings.ToUpper(text)

	if id := idDashRe.FindString(upper); id != "" {
		return id
	}

	for _, candidate := range idAlnumRe.FindAllString(upper, -1) {
		if isOpaqueID(candidate) {
			return candidate
		}
	}
	return ""
}

// ValidComplaintID reports whether s as a whole is a well-formed identifier.
func ValidComplaintID(s string) bool {
	s = strings.ToUpper(strings.TrimSpace(s))
	if idDashExactRe.MatchString(s) {
		return true
	}
	return len(s) >= 6 && len(s) <= 12 && isOpaqueID(s) && idAlnumRe.FindString(s) == s
}

func isOpaqueID(s string) bool {
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return false
	}

	for _, w := range idSkipWords {
		if s == w {
			return false
		}
	}
	return true
}

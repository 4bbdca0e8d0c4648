// Package contact pulls a phone number and an e-mail address out of resume text.
package contact

import (
	"regexp"
	"strings"
)

var (
	mobilePattern = regexp.MustCompile(`(\+?\d{1,3}[-\s]?)?(\(?\d{3}\)?[-\s]?)\d{3}[-\s]?\d{4}|\b[6-9]\d{9}\b`)
	indianMobile  = regexp.MustCompile(`^[6-9]\d{9}$`)
	maskPattern   = regexp.MustCompile(`(\d{2})\d{6}(\d{2})`)
	emailPattern  = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
)

// Contact holds the contact fields found in a resume. Missing fields are empty.
type Contact struct {
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
}

// Extract returns the first mobile number and e-mail address in text.
func Extract(text string) Contact {
	return Contact{Mobile: ExtractMobile(text), Email: ExtractEmail(text)}
}

// ExtractMobile returns the first phone number in text.
// Bare ten-digit Indian mobile numbers are masked as "98XXXXXX10"; other formats are returned unchanged.
func ExtractMobile(text string) string {
	number := strings.TrimSpace(mobilePattern.FindString(text))
	if number == "" {
		return ""
	}
	if indianMobile.MatchString(number) {
		return maskPattern.ReplaceAllString(number, "${1}XXXXXX${2}")
	}
	return number
}

// ExtractEmail returns the first e-mail address in text.
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

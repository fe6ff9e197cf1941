package domain

import (
	"regexp"
	"strings"
	"time"
)

// Submission is the early-access record a visitor provides. ID and CreatedAt
// are assigned by the database; the record is immutable once inserted.
type Submission struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// emailShape accepts local@domain.tld where no segment contains spaces or @.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	phoneMinDigits = 7
	phoneMaxDigits = 15
)

// ValidName reports whether the name is non-empty after trimming.
func ValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// ValidEmail reports whether the email matches the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailShape.MatchString(email)
}

// ValidPhone reports whether the phone carries between 7 and 15 digits.
// Non-digit characters such as spaces, plus signs and dashes are ignored.
func ValidPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= phoneMinDigits && digits <= phoneMaxDigits
}

// Trimmed returns a copy with surrounding whitespace removed from all fields.
func (s Submission) Trimmed() Submission {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	return s
}

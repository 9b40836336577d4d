package domain

import (
	"net/mail"
	"strings"
	"time"
)

// Feedback is a comment left by a visitor
type Feedback struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Referer   string    `db:"referer" json:"referer"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Form is the submitted feedback with per-field errors
type Form struct {
	Email   string
	Body    string
	Referer string
	Errors  map[string]string
}

// Validate trims the fields and fills Errors. It reports whether the form
// can be accepted.
func (f *Form) Validate() bool {
	f.Email = strings.TrimSpace(f.Email)
	f.Body = strings.TrimSpace(f.Body)
	f.Errors = map[string]string{}

	if f.Email != "" {
		if addr, err := mail.ParseAddress(f.Email); err != nil || addr.Address != f.Email {
			f.Errors["email"] = "Enter a valid e-mail address."
		}
	}
	if f.Body == "" {
		f.Errors["body"] = "This field is required."
	}

	return len(f.Errors) == 0
}

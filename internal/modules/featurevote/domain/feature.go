package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

// Feature is a visitor's suggestion for the portal
type Feature struct {
	ID            int64      `db:"id" json:"id"`
	UserName      string     `db:"user_name" json:"user_name"`
	UserEmail     string     `db:"user_email" json:"-"`
	Title         string     `db:"title" json:"title"`
	Description   string     `db:"description" json:"description"`
	UpVote        int        `db:"up_vote" json:"up_vote"`
	DownVote      int        `db:"down_vote" json:"down_vote"`
	Created       time.Time  `db:"created" json:"created"`
	LastCommented *time.Time `db:"last_commented" json:"last_commented,omitempty"`
	IsPublic      bool       `db:"is_public" json:"-"`
	IsRemoved     bool       `db:"is_removed" json:"-"`
}

func (f *Feature) NetVotes() int {
	return f.UpVote - f.DownVote
}

func (f *Feature) URL() string {
	return fmt.Sprintf("/features/%d/", f.ID)
}

// Direction is a vote: +1 for, -1 against
type Direction int

const (
	Up   Direction = 1
	Down Direction = -1
)

// ParseDirection accepts "up" and "down".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return 0, portalErrors.ErrInvalidVote
	}
}

// Form is a submitted feature suggestion with per-field errors
type Form struct {
	UserName    string
	UserEmail   string
	Title       string
	Description string
	Errors      map[string]string
}

// Validate trims the fields and fills Errors. Every field is required.
func (f *Form) Validate() bool {
	f.UserName = strings.TrimSpace(f.UserName)
	f.UserEmail = strings.TrimSpace(f.UserEmail)
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Errors = map[string]string{}

	required := map[string]string{
		"user_name":   f.UserName,
		"user_email":  f.UserEmail,
		"title":       f.Title,
		"description": f.Description,
	}
	for field, value := range required {
		if value == "" {
			f.Errors[field] = "This field is required."
		}
	}

	if _, missing := f.Errors["user_email"]; !missing {
		if addr, err := mail.ParseAddress(f.UserEmail); err != nil || addr.Address != f.UserEmail {
			f.Errors["user_email"] = "Enter a valid e-mail address."
		}
	}

	return len(f.Errors) == 0
}

package domain

import "time"

// Favourite is a portal page a visitor has saved
type Favourite struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	URL       string    `db:"url" json:"url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

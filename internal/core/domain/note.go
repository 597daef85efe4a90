package domain

import "time"

// Note is a text record owned by exactly one user. Ownership and timestamps
// are store-managed; clients may only mutate title and content.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

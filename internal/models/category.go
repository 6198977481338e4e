package models

import "time"

// Category classifies events for analytics and display. The color is
// consumed by the rendering layer only; categories never gate
// scheduling decisions.
type Category struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

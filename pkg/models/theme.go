package models

import "time"

// Theme represents a topical bucket headlines are classified into.
// Theme name is unique; a theme owns many headlines but deleting a theme
// only nulls the back-reference, it never cascades.
type Theme struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Color       string    `json:"color" db:"color"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ThemeWithCount is a theme plus its aggregate headline count, for reporting
type ThemeWithCount struct {
	Theme
	HeadlinesCount int `json:"headlines_count" db:"headlines_count"`
}

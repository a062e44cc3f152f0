package entity

import "time"

// Notice is a classified ad owned by a user.
// Many-to-many with User via user_favorites.
type Notice struct {
	ID           string
	OwnerID      string
	CategoryName string
	Title        string
	Description  string
	Location     string
	Price        string
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Category groups notices by name (sell, lost-found, in-good-hands).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

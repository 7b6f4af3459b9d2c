package model

import "time"

// Category groups products for browsing. Read-only reference data.
type Category struct {
	ID          int64
	Title       string
	Slug        string
	Description string
	ImgSrc      string
	CreatedAt   time.Time
}

// Product is a storefront item. Features is stored as a JSON array in the
// database.
type Product struct {
	ID          int64
	Title       string
	Price       float64
	Description string
	ImgSrc      string
	CategoryID  int64
	IsOnSale    bool
	Features    []string
	CreatedAt   time.Time
}

package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// UnknownOwner is the display name used when a book row references no
// owner or the owner relation is missing.
const UnknownOwner = "unknown user"

// Book represents a physical book in the shared catalog. A book with
// IsAvailableForLoan set always carries a non-nil OwnerID.
type Book struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Authors            []string  `json:"authors"`
	CategoryID         string    `json:"category_id"`
	CategoryName       string    `json:"category_name,omitempty"`
	PublishedDate      string    `json:"published_date,omitempty"`
	Description        string    `json:"description,omitempty"`
	Language           string    `json:"language,omitempty"`
	ThumbnailURL       string    `json:"thumbnail_url,omitempty"`
	PageCount          *int      `json:"page_count,omitempty"`
	ISBN               string    `json:"isbn,omitempty"`
	Barcode            string    `json:"barcode"`
	IsAvailableForLoan bool      `json:"is_available_for_loan"`
	OwnerID            *string   `json:"owner_id,omitempty"`
	OwnerUsername      string    `json:"owner_username,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

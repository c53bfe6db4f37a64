// Package data provides the book record, its validation rules, and the
// stores that persist it.
package data

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pagebound/bookstore-api/internal/validator"
)

// Book represents a single catalog record. The ID and both timestamps
// are assigned by the store; the ID is immutable once assigned.
type Book struct {
	ID          string    `json:"id" db:"id"`                   // Store-generated identifier
	Title       string    `json:"title" db:"title"`             // Title of the book
	Author      string    `json:"author" db:"author"`           // Author name (sanitized)
	Price       float64   `json:"price" db:"price"`             // Unit price, never negative
	Quantity    int       `json:"quantity" db:"quantity"`       // Copies in stock; zero means out of stock
	Description string    `json:"description" db:"description"` // Free-text description
	Image       string    `json:"image" db:"image"`             // Image reference (URL or trusted-host link)
	CreatedAt   time.Time `json:"created_at" db:"created_at"`   // Timestamp when the record was created
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`   // Timestamp when the record was last modified
}

// BookInput holds the six fields a client must supply on create and on
// update (updates always resend the full field set; there are no partial
// updates). Price and Quantity are pointers so that "not provided" (nil)
// is distinct from an explicit zero.
type BookInput struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
}

// Rules bundles the configured validation strategies and length
// thresholds applied to every incoming BookInput.
type Rules struct {
	Quality              validator.TextQuality
	Image                validator.ImageRef
	MinTitleLength       int
	MinDescriptionLength int
}

// ValidateBook checks every field of input against the catalog rules and
// records each violation in v. All fields are always checked so the
// caller sees the complete list of problems, not just the first one;
// within a single field only the first violated tier is reported.
// The author value is expected to be sanitized already.
func ValidateBook(v *validator.Validator, input *BookInput, rules Rules) {
	title := strings.TrimSpace(input.Title)
	v.Check(title != "", "title", "must be provided")
	v.Check(utf8.RuneCountInString(title) >= rules.MinTitleLength, "title",
		fmt.Sprintf("must be at least %d characters long", rules.MinTitleLength))
	v.Check(!rules.Quality.IsGibberish(input.Title), "title", "must be meaningful text")

	author := strings.TrimSpace(input.Author)
	v.Check(author != "", "author", "must be provided")
	v.Check(utf8.RuneCountInString(author) >= rules.MinTitleLength, "author",
		fmt.Sprintf("must be at least %d characters long", rules.MinTitleLength))
	v.Check(!rules.Quality.IsGibberish(input.Author), "author", "must be meaningful text")

	description := strings.TrimSpace(input.Description)
	v.Check(description != "", "description", "must be provided")
	v.Check(utf8.RuneCountInString(description) >= rules.MinDescriptionLength, "description",
		fmt.Sprintf("must be at least %d characters long", rules.MinDescriptionLength))
	v.Check(!rules.Quality.IsGibberish(input.Description), "description", "must be meaningful text")

	image := strings.TrimSpace(input.Image)
	v.Check(image != "", "image", "must be provided")
	if image != "" {
		v.Check(rules.Image.Valid(input.Image), "image", "must be a valid image URL")
	}

	if input.Price == nil {
		v.AddError("price", "must be provided")
	} else {
		v.Check(*input.Price >= 0, "price", "must not be negative")
	}

	if input.Quantity == nil {
		v.AddError("quantity", "must be provided")
	} else {
		v.Check(*input.Quantity >= 0, "quantity", "must not be negative")
	}
}

package model

// Book represents a catalog entry as stored in the `books` table.
// Prices are decimal in the database and surface as float64 here,
// matching the JSON representation used by the API.
//
// Fields:
//  ID          – primary key identifier of the book.
//  Title       – book title.
//  Author      – book author.
//  Description – free-form description, may be empty.
//  Price       – current sale price, non-negative.
//  Category    – free-form category label, may be empty.
//  ImageURL    – absolute URL of the cover image, empty when none was uploaded.
type Book struct {
	ID          uint64  `json:"book_id"`     // books.book_id
	Title       string  `json:"title"`       // books.title
	Author      string  `json:"author"`      // books.author
	Description string  `json:"description"` // books.description
	Price       float64 `json:"price"`       // books.price
	Category    string  `json:"category"`    // books.category
	ImageURL    string  `json:"image_url"`   // books.image_url
}

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/online-bookstore/internal/model"
	"github.com/iliyamo/online-bookstore/internal/repository"
	"github.com/iliyamo/online-bookstore/internal/storage"
)

// BookHandler implements the catalog endpoints. Writes accept either
// JSON or multipart form data; a multipart request may carry a cover
// image which is stored on disk and referenced by an absolute URL built
// from the request's own host.
type BookHandler struct {
	Books *repository.BookRepo
	Store *storage.FileStore
}

func NewBookHandler(books *repository.BookRepo, store *storage.FileStore) *BookHandler {
	return &BookHandler{Books: books, Store: store}
}

type bookReq struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
}

// List handles GET /api/books.
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.Books.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, books)
}

// Get handles GET /api/books/:id.
func (h *BookHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book id"})
	}
	book, err := h.Books.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, book)
}

// Create handles POST /api/books. Description and category default to
// empty; the image URL comes from an uploaded asset when one is
// attached, otherwise it stays empty.
func (h *BookHandler) Create(c echo.Context) error {
	req, uploaded, err := h.readBookRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" || req.Author == "" || req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, author and price are required"})
	}

	imageURL := ""
	if uploaded != "" {
		imageURL = h.servedURL(c, uploaded)
	}

	id, err := h.Books.Create(c.Request().Context(), model.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    imageURL,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Book created successfully",
		"book_id":   id,
		"image_url": imageURL,
	})
}

// Update handles PUT /api/books/:id. The image URL is replaced only
// when a new asset was uploaded; otherwise the caller-supplied existing
// value is kept.
func (h *BookHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book id"})
	}
	req, uploaded, err := h.readBookRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" || req.Author == "" || req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, author and price are required"})
	}

	imageURL := req.ImageURL
	if uploaded != "" {
		imageURL = h.servedURL(c, uploaded)
	}

	err = h.Books.Update(c.Request().Context(), model.Book{
		ID:          id,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    imageURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Book updated successfully", "image_url": imageURL})
}

// Delete handles DELETE /api/books/:id. Order items keep referencing
// the deleted id with their frozen price; no cascade runs.
func (h *BookHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book id"})
	}
	if err := h.Books.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book deleted successfully"})
}

// readBookRequest accepts both multipart form data (admin UI with file
// upload) and plain JSON. It returns the parsed fields plus the stored
// filename when an image was part of the request.
func (h *BookHandler) readBookRequest(c echo.Context) (bookReq, string, error) {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		var req bookReq
		if err := c.Bind(&req); err != nil {
			return bookReq{}, "", err
		}
		req.Title = strings.TrimSpace(req.Title)
		req.Author = strings.TrimSpace(req.Author)
		return req, "", nil
	}

	price, _ := strconv.ParseFloat(c.FormValue("price"), 64)
	req := bookReq{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Author:      strings.TrimSpace(c.FormValue("author")),
		Description: c.FormValue("description"),
		Price:       price,
		Category:    c.FormValue("category"),
		ImageURL:    c.FormValue("image_url"),
	}

	file, err := c.FormFile("image")
	if err != nil {
		// No image attached; not an error.
		return req, "", nil
	}
	src, err := file.Open()
	if err != nil {
		return bookReq{}, "", err
	}
	defer src.Close()
	name, err := h.Store.Save(file.Filename, src)
	if err != nil {
		return bookReq{}, "", err
	}
	return req, name, nil
}

// servedURL builds the public URL of a stored upload from the request's
// own scheme and host.
func (h *BookHandler) servedURL(c echo.Context, filename string) string {
	return c.Scheme() + "://" + c.Request().Host + "/uploads/" + filename
}

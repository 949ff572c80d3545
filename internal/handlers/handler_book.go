package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ale-project/ale_backend/internal/apperrors"
	portssvc "github.com/ale-project/ale_backend/internal/core/ports/services"
	"github.com/ale-project/ale_backend/internal/dto"
	"github.com/ale-project/ale_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// bookHandler handles HTTP requests for book lifecycle.
type bookHandler struct {
	bookService portssvc.BookSvcFacade
}

func newBookHandler(bs portssvc.BookSvcFacade) *bookHandler {
	return &bookHandler{
		bookService: bs,
	}
}

// registerBookRoutes registers book lifecycle routes on the /books group.
func registerBookRoutes(books *gin.RouterGroup, bookService portssvc.BookSvcFacade) {
	h := newBookHandler(bookService)

	books.POST("", h.createBook)
	books.GET("", h.listBooks)
	books.GET("/:bookID", h.getBook)
	books.DELETE("/:bookID", h.deleteBook)
}

// createBook godoc
// @Summary Create or fetch a book
// @Description Idempotent create keyed on the unique book name
// @Tags books
// @Accept  json
// @Produce  json
// @Param   book body dto.CreateBookRequest true "Book details"
// @Success 200 {object} dto.CreateBookResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books [post]
func (h *bookHandler) createBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if req.Name == "" || req.Currency == "" {
		respondError(c, apperrors.New(apperrors.MissingInput, "Missing name or currency"))
		return
	}

	book, isNew, err := h.bookService.GetOrCreateBook(c.Request.Context(), req.Name, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	message := fmt.Sprintf("Book %s already exists", book.Name)
	if isNew {
		message = fmt.Sprintf("Book %s (%s) created", book.Name, book.QuoteCurrency)
		logger.Info("Book created", slog.String("book_id", book.BookID), slog.String("name", book.Name))
	}
	c.JSON(http.StatusOK, dto.CreateBookResponse{
		Success:      isNew,
		Message:      message,
		BookResponse: dto.ToBookResponse(book),
	})
}

// listBooks godoc
// @Summary List all books
// @Tags books
// @Produce  json
// @Success 200 {array} dto.BookResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books [get]
func (h *bookHandler) listBooks(c *gin.Context) {
	books, err := h.bookService.ListBooks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponses(books))
}

// getBook godoc
// @Summary Get a book by ID
// @Tags books
// @Produce  json
// @Param   bookID path string true "Book ID"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books/{bookID} [get]
func (h *bookHandler) getBook(c *gin.Context) {
	book, err := h.bookService.GetBookByID(c.Request.Context(), c.Param("bookID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// deleteBook godoc
// @Summary Delete a book and everything in it
// @Description Removes the book, its journal entries and transactions
// @Tags books
// @Produce  json
// @Param   bookID path string true "Book ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books/{bookID} [delete]
func (h *bookHandler) deleteBook(c *gin.Context) {
	bookID := c.Param("bookID")
	if err := h.bookService.DeleteBook(c.Request.Context(), bookID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Book and all its entries have been deleted",
		"id":      bookID,
	})
}

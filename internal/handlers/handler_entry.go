package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/ale-project/ale_backend/internal/apperrors"
	portssvc "github.com/ale-project/ale_backend/internal/core/ports/services"
	"github.com/ale-project/ale_backend/internal/dto"
	"github.com/ale-project/ale_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// entryHandler handles posting, reading and voiding journal entries.
type entryHandler struct {
	bookService  portssvc.BookSvcFacade
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(bs portssvc.BookSvcFacade, es portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{
		bookService:  bs,
		entryService: es,
	}
}

// registerEntryRoutes registers ledger routes on the /books/:bookID group.
func registerEntryRoutes(book *gin.RouterGroup, bookService portssvc.BookSvcFacade, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(bookService, entryService)

	book.POST("/ledger", h.postEntry)
	book.GET("/ledger", h.getLedger)
	book.GET("/ledger/:entryID", h.getEntry)
	book.POST("/ledger/:entryID/void", h.voidEntry)
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Nets each leg's credit minus debit into one signed amount and commits the balanced entry
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   bookID path string true "Book ID"
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 200 {object} dto.CommitResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books/{bookID}/ledger [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	book, err := h.bookService.GetBookByID(c.Request.Context(), c.Param("bookID"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	timestamp, err := parseEntryTimestamp(req.Timestamp)
	if err != nil {
		respondError(c, err)
		return
	}

	builder := h.entryService.NewEntry(book, req.Memo, timestamp)
	if req.Approved != nil {
		builder.SetApproved(*req.Approved)
	}
	for i, leg := range req.Transactions {
		amount := leg.Credit - leg.Debit
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			respondError(c, apperrors.Newf(apperrors.ValidationError, "invalid credit and/or debit amount for transaction %d", i))
			return
		}
		absAmount := decimal.NewFromFloat(math.Abs(amount))
		rate := decimal.NewFromFloat(leg.ExchangeRate)
		if amount > 0 {
			builder.Credit(leg.Account, absAmount, leg.Currency, rate)
		} else {
			builder.Debit(leg.Account, absAmount, leg.Currency, rate)
		}
	}

	entry, err := h.entryService.CommitEntry(c.Request.Context(), builder)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Journal entry committed",
		slog.String("book_id", book.BookID),
		slog.String("entry_id", entry.EntryID),
	)
	c.JSON(http.StatusOK, dto.CommitResponse{
		Success: true,
		Message: "Journal Entry has been saved",
		ID:      entry.EntryID,
	})
}

// getLedger godoc
// @Summary Fetch the ledger
// @Tags ledger
// @Produce  json
// @Param   bookID path string true "Book ID"
// @Param   startDate query string false "RFC3339 lower bound"
// @Param   endDate query string false "RFC3339 upper bound"
// @Param   perPage query int false "Page size"
// @Param   page query int false "Page number, 1-based"
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books/{bookID}/ledger [get]
func (h *entryHandler) getLedger(c *gin.Context) {
	book, err := h.bookService.GetBookByID(c.Request.Context(), c.Param("bookID"))
	if err != nil {
		respondError(c, err)
		return
	}

	filter, err := parseFilterQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	count, entries, err := h.bookService.GetLedger(c.Request.Context(), book, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LedgerResponse{
		Book:      book.Name,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Count:     count,
		Entries:   dto.ToEntryResponses(entries),
	})
}

// getEntry godoc
// @Summary Get a journal entry with its transactions
// @Tags ledger
// @Produce  json
// @Param   bookID path string true "Book ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books/{bookID}/ledger/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	book, err := h.bookService.GetBookByID(c.Request.Context(), c.Param("bookID"))
	if err != nil {
		respondError(c, err)
		return
	}

	entry, err := h.entryService.GetEntry(c.Request.Context(), book, c.Param("entryID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// voidEntry godoc
// @Summary Void a journal entry
// @Description Marks the entry void and commits an equal-and-opposite reversal entry
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   bookID path string true "Book ID"
// @Param   entryID path string true "Entry ID"
// @Param   void body dto.VoidEntryRequest false "Void reason"
// @Success 200 {object} dto.CommitResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books/{bookID}/ledger/{entryID}/void [post]
func (h *entryHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	book, err := h.bookService.GetBookByID(c.Request.Context(), c.Param("bookID"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.VoidEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
	}

	reversal, err := h.entryService.VoidEntry(c.Request.Context(), book, c.Param("entryID"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Journal entry voided",
		slog.String("book_id", book.BookID),
		slog.String("entry_id", c.Param("entryID")),
		slog.String("reversal_entry_id", reversal.EntryID),
	)
	c.JSON(http.StatusOK, dto.CommitResponse{
		Success: true,
		Message: "Journal Entry has been voided",
		ID:      reversal.EntryID,
	})
}

// parseEntryTimestamp accepts an RFC3339 timestamp or empty for "now".
func parseEntryTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperrors.Newf(apperrors.ValidationError, "invalid journal entry timestamp: %s", raw)
	}
	return ts, nil
}

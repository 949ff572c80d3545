package handlers

import (
	"net/http"

	portssvc "github.com/ale-project/ale_backend/internal/core/ports/services"
	"github.com/ale-project/ale_backend/internal/dto"

	"github.com/gin-gonic/gin"
)

// reportHandler serves the read-side queries of a book.
type reportHandler struct {
	bookService portssvc.BookSvcFacade
}

func newReportHandler(bs portssvc.BookSvcFacade) *reportHandler {
	return &reportHandler{
		bookService: bs,
	}
}

// registerReportRoutes registers reporting routes on the /books/:bookID group.
func registerReportRoutes(book *gin.RouterGroup, bookService portssvc.BookSvcFacade) {
	h := newReportHandler(bookService)

	book.GET("/balance", h.getBalance)
	book.GET("/tb", h.getTrialBalance)
	book.GET("/transactions", h.getTransactions)
	book.POST("/marktomarket", h.markToMarket)
}

// getBalance godoc
// @Summary Get an account balance
// @Description Aggregates credit and debit totals over the matched transactions
// @Tags reports
// @Produce  json
// @Param   bookID path string true "Book ID"
// @Param   account query string false "Account path prefix"
// @Param   inQuoteCurrency query bool false "Convert through stored exchange rates (default true)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books/{bookID}/balance [get]
func (h *reportHandler) getBalance(c *gin.Context) {
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
	inQuoteCurrency := boolQuery(c, "inQuoteCurrency", true)

	balance, err := h.bookService.GetBalance(c.Request.Context(), book, filter, inQuoteCurrency)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(&balance))
}

// getTrialBalance godoc
// @Summary Trial balance over the registered accounts
// @Tags reports
// @Produce  json
// @Param   bookID path string true "Book ID"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books/{bookID}/tb [get]
func (h *reportHandler) getTrialBalance(c *gin.Context) {
	book, err := h.bookService.GetBookByID(c.Request.Context(), c.Param("bookID"))
	if err != nil {
		respondError(c, err)
		return
	}

	tb, err := h.bookService.TrialBalance(c.Request.Context(), book)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(&tb))
}

// getTransactions godoc
// @Summary List transactions for the given accounts
// @Tags reports
// @Produce  json
// @Param   bookID path string true "Book ID"
// @Param   accounts query string false "Comma-separated account path prefixes"
// @Param   perPage query int false "Page size"
// @Param   page query int false "Page number, 1-based"
// @Success 200 {object} dto.TransactionsResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books/{bookID}/transactions [get]
func (h *reportHandler) getTransactions(c *gin.Context) {
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

	txns, err := h.bookService.GetTransactions(c.Request.Context(), book, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TransactionsResponse{
		Book:         book.Name,
		Count:        len(txns),
		Transactions: dto.ToTransactionResponses(txns),
	})
}

// markToMarket godoc
// @Summary Mark account balances to market
// @Description Revalues per-account balances at the supplied exchange rates and reports the unrealized profit
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   bookID path string true "Book ID"
// @Param   rates body dto.MarkToMarketRequest true "Exchange rates and optional account filter"
// @Success 200 {object} map[string]float64
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books/{bookID}/marktomarket [post]
func (h *reportHandler) markToMarket(c *gin.Context) {
	book, err := h.bookService.GetBookByID(c.Request.Context(), c.Param("bookID"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.MarkToMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	filter := domainFilterForAccounts(req.Accounts)
	result, err := h.bookService.MarkToMarket(c.Request.Context(), book, filter, req.ExchangeRates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMarkToMarketResponse(&result))
}

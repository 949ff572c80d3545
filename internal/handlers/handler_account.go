package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ale-project/ale_backend/internal/core/domain"
	portssvc "github.com/ale-project/ale_backend/internal/core/ports/services"
	"github.com/ale-project/ale_backend/internal/dto"
	"github.com/ale-project/ale_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// accountHandler handles registered-account metadata and account listing.
type accountHandler struct {
	bookService    portssvc.BookSvcFacade
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(bs portssvc.BookSvcFacade, as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		bookService:    bs,
		accountService: as,
	}
}

// registerAccountRoutes registers account routes on the /books/:bookID group.
func registerAccountRoutes(book *gin.RouterGroup, bookService portssvc.BookSvcFacade, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(bookService, accountService)

	book.POST("/accounts", h.createAccount)
	book.GET("/accounts", h.listAccounts)
}

// createAccount godoc
// @Summary Register an account
// @Description Registers chart-of-accounts metadata for an account path
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   bookID path string true "Book ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 200 {object} dto.CreateAccountResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books/{bookID}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	book, err := h.bookService.GetBookByID(c.Request.Context(), c.Param("bookID"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	account, _, err := h.accountService.RegisterAccount(c.Request.Context(), book.BookID, domain.Account{
		AccountCode:    req.AccountCode,
		AccountName:    req.AccountName,
		ToIncrease:     domain.EntrySide(req.ToIncrease),
		Classification: req.Classification,
		AccountType:    req.AccountType,
		SubType:        req.SubType,
		Memo:           req.Memo,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Account registered",
		slog.String("book_id", book.BookID),
		slog.String("account_name", account.AccountName),
	)
	c.JSON(http.StatusOK, dto.CreateAccountResponse{
		Success:         true,
		Message:         "New account has been created successfully",
		AccountResponse: dto.ToAccountResponse(account),
	})
}

// listAccounts godoc
// @Summary List accounts used in the book
// @Description Lists every distinct account path plus its ancestors; with registered=true, returns the registered chart-of-accounts metadata instead
// @Tags accounts
// @Produce  json
// @Param   bookID path string true "Book ID"
// @Param   registered query bool false "List registered account metadata"
// @Success 200 {array} string
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /books/{bookID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	book, err := h.bookService.GetBookByID(c.Request.Context(), c.Param("bookID"))
	if err != nil {
		respondError(c, err)
		return
	}

	if boolQuery(c, "registered", false) {
		accounts, err := h.accountService.ListRegisteredAccounts(c.Request.Context(), book.BookID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
		return
	}

	paths, err := h.bookService.ListAccounts(c.Request.Context(), book)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paths)
}

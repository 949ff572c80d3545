package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/ale-project/ale_backend/internal/apperrors"
	"github.com/ale-project/ale_backend/internal/core/domain"

	"github.com/gin-gonic/gin"
)

// parseFilterQuery builds a TransactionFilter from the shared query
// parameters. Unknown parameters are ignored; malformed dates fail with
// ValidationError.
func parseFilterQuery(c *gin.Context) (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{}

	if accounts := c.Query("accounts"); accounts != "" {
		filter.Accounts = strings.Split(accounts, ",")
	}
	if account := c.Query("account"); account != "" {
		filter.Accounts = append(filter.Accounts, account)
	}

	start, err := parseDateQuery(c, "startDate")
	if err != nil {
		return filter, err
	}
	filter.StartDate = start

	end, err := parseDateQuery(c, "endDate")
	if err != nil {
		return filter, err
	}
	filter.EndDate = end

	filter.Memo = c.Query("memo")
	filter.EntryID = c.Query("journalEntry")
	filter.PerPage = intQuery(c, "perPage")
	filter.Page = intQuery(c, "page")
	filter.NewestFirst = boolQuery(c, "newestFirst", false)
	return filter, nil
}

// domainFilterForAccounts scopes a filter to the given account paths.
func domainFilterForAccounts(accounts []string) domain.TransactionFilter {
	return domain.TransactionFilter{Accounts: accounts}
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ValidationError, "invalid %s: %s", name, raw)
	}
	return &ts, nil
}

func intQuery(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}

func boolQuery(c *gin.Context, name string, fallback bool) bool {
	value, err := strconv.ParseBool(c.Query(name))
	if err != nil {
		return fallback
	}
	return value
}

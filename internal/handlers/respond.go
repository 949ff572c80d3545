package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ale-project/ale_backend/internal/apperrors"
	"github.com/ale-project/ale_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// respondError writes the uniform failure body for any error. Coded
// AleErrors keep their code; everything else degrades to UnknownError.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Request failed",
		slog.String("error", err.Error()),
		slog.Int("error_code", int(apperrors.CodeOf(err))),
	)
	c.JSON(http.StatusBadRequest, apperrors.AsResponse(err))
}

// respondBindingError maps a gin binding failure onto the ValidationError
// code before writing the uniform failure body.
func respondBindingError(c *gin.Context, err error) {
	respondError(c, apperrors.Wrap(apperrors.ValidationError, err, "invalid request body"))
}

package common

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"axiapac.com/timetracker/infrastructure/filesystem"
	"axiapac.com/timetracker/timetracking/core"
	"axiapac.com/timetracker/timetracking/importer"
	"axiapac.com/timetracker/timetracking/report"
	web "axiapac.com/timetracker/web/common"
	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Handler carries the services every endpoint shares.
type Handler struct {
	Tracker  *core.Tracker
	Reporter *report.Reporter
	Importer *importer.Importer
	Files    filesystem.Files
	// ExportBucket receives generated exports. Empty means exports are
	// streamed back to the caller.
	ExportBucket string
	Logger       *slog.Logger
}

// RespondError maps domain errors onto HTTP status codes.
func (h *Handler) RespondError(c *gin.Context, err error) {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, web.NewCodedErrorResponse("validation", ve.Reason))
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, web.NewCodedErrorResponse("not_found", err.Error()))
	case errors.Is(err, core.ErrConflict):
		c.JSON(http.StatusConflict, web.NewCodedErrorResponse("conflict", "Another update is in progress, please retry."))
	default:
		h.logger().Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse("Internal server error"))
	}
	_ = c.Error(err)
}

// BadRequest reports a malformed request body or query.
func (h *Handler) BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, web.NewCodedErrorResponse("validation", web.FormatBindingError(err)))
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// Page reads limit and offset query values, clamping limit to MaxLimit.
func Page(c *gin.Context) (limit, offset int) {
	limit = DefaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = min(v, MaxLimit)
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// OptionalQuery is nil when the key is absent or empty.
func OptionalQuery(c *gin.Context, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}

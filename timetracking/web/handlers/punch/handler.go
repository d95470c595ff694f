package punch

import (
	"bytes"
	"errors"
	"net/http"

	"axiapac.com/timetracker/timetracking/core"
	"axiapac.com/timetracker/timetracking/importer"
	"axiapac.com/timetracker/timetracking/model"
	common "axiapac.com/timetracker/timetracking/web/common"
	web "axiapac.com/timetracker/web/common"
	"axiapac.com/timetracker/web/handlers"
	"github.com/gin-gonic/gin"
)

const recentLimit = 50

type Endpoint struct {
	base *common.Handler
}

func Register(r *gin.RouterGroup, h *common.Handler) {
	endpoint := &Endpoint{base: h}
	r.POST("/punches", endpoint.Record)
	r.GET("/punches", endpoint.Search)
	r.GET("/punches/recent", endpoint.Recent)
	r.GET("/punches/today", endpoint.Today)
	r.POST("/punches/import", endpoint.Import)
	r.GET("/employees/:id/status", endpoint.Status)
}

type PunchDTO struct {
	EmployeeID string             `json:"employeeId" binding:"required"`
	Type       string             `json:"type" binding:"required,oneof=punch_in punch_out break_start break_end"`
	Timestamp  *web.LocalDateTime `json:"timestamp,omitempty"`
	Notes      *string            `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

func (ep *Endpoint) Record(c *gin.Context) {
	var dto PunchDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		ep.base.BadRequest(c, err)
		return
	}

	event, err := ep.base.Tracker.RecordPunch(c.Request.Context(), core.PunchRequest{
		EmployeeID: dto.EmployeeID,
		Kind:       model.PunchKind(dto.Type),
		Instant:    dto.Timestamp.In(ep.base.Tracker.TimeZone().Location()),
		Note:       dto.Notes,
	})
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, web.NewSuccessResponse(event))
}

type SearchQuery struct {
	EmployeeID string        `form:"employeeId"`
	StartDate  *web.DateOnly `form:"startDate"`
	EndDate    *web.DateOnly `form:"endDate"`
	Type       string        `form:"type" binding:"omitempty,oneof=punch_in punch_out break_start break_end"`
}

func (ep *Endpoint) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		ep.base.BadRequest(c, err)
		return
	}
	limit, offset := common.Page(c)

	f := core.EventFilter{
		EmployeeID: common.OptionalQuery(c, "employeeId"),
		StartDate:  q.StartDate.TimePtr(),
		EndDate:    q.EndDate.TimePtr(),
		Limit:      limit,
		Offset:     offset,
	}
	if q.Type != "" {
		kind := model.PunchKind(q.Type)
		f.Kind = &kind
	}

	events, total, err := ep.base.Tracker.ListEvents(c.Request.Context(), f)
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewPagedResponse(events, total, limit, offset))
}

func (ep *Endpoint) Recent(c *gin.Context) {
	events, _, err := ep.base.Tracker.ListEvents(c.Request.Context(), core.EventFilter{Limit: recentLimit})
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(events))
}

func (ep *Endpoint) Today(c *gin.Context) {
	events, err := ep.base.Tracker.TodayEvents(c.Request.Context())
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(events))
}

func (ep *Endpoint) Status(c *gin.Context) {
	status, err := ep.base.Tracker.CurrentStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(status))
}

// Import accepts one or more CSV files under the "files" field and reports
// per-file results.
func (ep *Endpoint) Import(c *gin.Context) {
	files, err := handlers.ReadUploadedFiles(c, "files", ".csv")
	if err != nil {
		if errors.Is(err, handlers.ErrNoFiles) {
			c.JSON(http.StatusBadRequest, web.NewCodedErrorResponse("validation", "At least one .csv file is required."))
			return
		}
		c.JSON(http.StatusBadRequest, web.NewCodedErrorResponse("validation", err.Error()))
		return
	}

	results := map[string]*importer.Result{}
	for _, f := range files {
		result, err := ep.base.Importer.ImportFile(c.Request.Context(), bytes.NewReader(f.Body))
		if err != nil {
			ep.base.RespondError(c, err)
			return
		}
		results[f.Filename] = result
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(results))
}

package session

import (
	"net/http"

	"axiapac.com/timetracker/security"
	"axiapac.com/timetracker/timetracking/core"
	"axiapac.com/timetracker/timetracking/model"
	common "axiapac.com/timetracker/timetracking/web/common"
	web "axiapac.com/timetracker/web/common"
	"axiapac.com/timetracker/web/middlewares"
	"github.com/gin-gonic/gin"
)

type Endpoint struct {
	base *common.Handler
}

func Register(r *gin.RouterGroup, h *common.Handler) {
	endpoint := &Endpoint{base: h}
	r.GET("/sessions", endpoint.Search)
	r.GET("/sessions/:id", endpoint.Find)

	admin := r.Group("", middlewares.RequireRole(security.RoleAdmin))
	admin.PUT("/sessions/:id", endpoint.Update)
	admin.POST("/sessions/generate", endpoint.Generate)
}

type SearchQuery struct {
	EmployeeID string        `form:"employeeId"`
	StartDate  *web.DateOnly `form:"startDate"`
	EndDate    *web.DateOnly `form:"endDate"`
	Status     string        `form:"status" binding:"omitempty,oneof=in_progress on_break complete"`
}

func (ep *Endpoint) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		ep.base.BadRequest(c, err)
		return
	}
	limit, offset := common.Page(c)

	f := core.SessionFilter{
		EmployeeID: common.OptionalQuery(c, "employeeId"),
		StartDate:  q.StartDate.TimePtr(),
		EndDate:    q.EndDate.TimePtr(),
		Limit:      limit,
		Offset:     offset,
	}
	if q.Status != "" {
		status := model.SessionStatus(q.Status)
		f.Status = &status
	}

	sessions, total, err := ep.base.Tracker.ListSessions(c.Request.Context(), f)
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewPagedResponse(sessions, total, limit, offset))
}

func (ep *Endpoint) Find(c *gin.Context) {
	session, err := ep.base.Tracker.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(session))
}

// SessionUpdateDTO replaces the session's times and note. Omitted fields
// are cleared.
type SessionUpdateDTO struct {
	PunchIn  *web.LocalDateTime `json:"punchIn"`
	PunchOut *web.LocalDateTime `json:"punchOut"`
	Notes    *string            `json:"notes" binding:"omitempty,max=1000"`
}

func (ep *Endpoint) Update(c *gin.Context) {
	var dto SessionUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		ep.base.BadRequest(c, err)
		return
	}

	loc := ep.base.Tracker.TimeZone().Location()
	session, err := ep.base.Tracker.EditSession(c.Request.Context(), c.Param("id"), core.SessionEdit{
		PunchIn:  dto.PunchIn.In(loc),
		PunchOut: dto.PunchOut.In(loc),
		Note:     dto.Notes,
	})
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(session))
}

type GenerateDTO struct {
	StartDate  web.DateOnly `json:"startDate" binding:"required"`
	EndDate    web.DateOnly `json:"endDate" binding:"required"`
	EmployeeID *string      `json:"employeeId,omitempty"`
}

func (ep *Endpoint) Generate(c *gin.Context) {
	var dto GenerateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		ep.base.BadRequest(c, err)
		return
	}

	sessions, err := ep.base.Tracker.RegenerateSessions(c.Request.Context(), core.RegenerateOptions{
		EmployeeID: dto.EmployeeID,
		StartDate:  dto.StartDate.Time,
		EndDate:    dto.EndDate.Time,
	})
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{
		"sessionsGenerated": len(sessions),
		"sessions":          sessions,
	}))
}

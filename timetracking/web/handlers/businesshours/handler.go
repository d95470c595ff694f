package businesshours

import (
	"net/http"

	"axiapac.com/timetracker/security"
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
	r.GET("/business-hours", endpoint.List)
	r.GET("/business-hours/active", endpoint.Active)

	admin := r.Group("", middlewares.RequireRole(security.RoleAdmin))
	admin.POST("/business-hours", endpoint.Create)
	admin.POST("/business-hours/:id/activate", endpoint.Activate)
}

type BusinessHoursDTO struct {
	StartTime     string `json:"startTime" binding:"required"`
	EndTime       string `json:"endTime" binding:"required"`
	BreakDuration *int   `json:"breakDuration" binding:"omitempty,min=0,max=480"`
	LateThreshold *int   `json:"lateThreshold" binding:"omitempty,min=0,max=240"`
	Activate      bool   `json:"activate"`
}

func (ep *Endpoint) List(c *gin.Context) {
	configs, err := ep.base.Tracker.ListBusinessHours(c.Request.Context())
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(configs))
}

// Active responds with null data when no configuration is active.
func (ep *Endpoint) Active(c *gin.Context) {
	cfg, err := ep.base.Tracker.ActiveConfiguration(c.Request.Context())
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(cfg))
}

func (ep *Endpoint) Create(c *gin.Context) {
	var dto BusinessHoursDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		ep.base.BadRequest(c, err)
		return
	}

	cfg := model.BusinessHours{
		StartTime:     dto.StartTime,
		EndTime:       dto.EndTime,
		BreakDuration: model.DefaultBreakDuration,
		LateThreshold: model.DefaultLateThreshold,
	}
	if dto.BreakDuration != nil {
		cfg.BreakDuration = *dto.BreakDuration
	}
	if dto.LateThreshold != nil {
		cfg.LateThreshold = *dto.LateThreshold
	}

	created, err := ep.base.Tracker.CreateBusinessHours(c.Request.Context(), cfg, dto.Activate)
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, web.NewSuccessResponse(created))
}

func (ep *Endpoint) Activate(c *gin.Context) {
	cfg, err := ep.base.Tracker.ActivateBusinessHours(c.Request.Context(), c.Param("id"))
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(cfg))
}

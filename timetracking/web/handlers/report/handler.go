package report

import (
	"net/http"

	"axiapac.com/timetracker/timetracking/report"
	common "axiapac.com/timetracker/timetracking/web/common"
	web "axiapac.com/timetracker/web/common"
	"github.com/gin-gonic/gin"
)

type Endpoint struct {
	base *common.Handler
}

func Register(r *gin.RouterGroup, h *common.Handler) {
	endpoint := &Endpoint{base: h}
	r.GET("/reports/overview", endpoint.Overview)
	r.GET("/reports/employees", endpoint.Employees)
	r.GET("/reports/daily", endpoint.Daily)
	r.POST("/reports/export", endpoint.Export)
}

type RangeQuery struct {
	StartDate  web.DateOnly `form:"startDate"`
	EndDate    web.DateOnly `form:"endDate"`
	EmployeeID string       `form:"employeeId"`
}

func (q RangeQuery) filter() report.Filter {
	f := report.Filter{StartDate: q.StartDate.Time, EndDate: q.EndDate.Time}
	if q.EmployeeID != "" {
		f.EmployeeID = &q.EmployeeID
	}
	return f
}

func (ep *Endpoint) bind(c *gin.Context) (report.Filter, bool) {
	var q RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		ep.base.BadRequest(c, err)
		return report.Filter{}, false
	}
	return q.filter(), true
}

func (ep *Endpoint) Overview(c *gin.Context) {
	f, ok := ep.bind(c)
	if !ok {
		return
	}
	overview, err := ep.base.Reporter.Overview(c.Request.Context(), f)
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(overview))
}

func (ep *Endpoint) Employees(c *gin.Context) {
	f, ok := ep.bind(c)
	if !ok {
		return
	}
	stats, err := ep.base.Reporter.Employees(c.Request.Context(), f)
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(stats))
}

func (ep *Endpoint) Daily(c *gin.Context) {
	f, ok := ep.bind(c)
	if !ok {
		return
	}
	stats, err := ep.base.Reporter.Daily(c.Request.Context(), f)
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(stats))
}

type ExportDTO struct {
	StartDate     web.DateOnly `json:"startDate"`
	EndDate       web.DateOnly `json:"endDate"`
	EmployeeID    *string      `json:"employeeId,omitempty"`
	Format        string       `json:"format"`
	IncludeCycles bool         `json:"includeCycles"`
}

// Export streams the file back, or uploads it when an export bucket is
// configured and responds with its key.
func (ep *Endpoint) Export(c *gin.Context) {
	var dto ExportDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		ep.base.BadRequest(c, err)
		return
	}
	format, err := report.ParseFormat(dto.Format)
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}

	f := report.Filter{StartDate: dto.StartDate.Time, EndDate: dto.EndDate.Time, EmployeeID: dto.EmployeeID}
	export, err := ep.base.Reporter.Export(c.Request.Context(), f, format, dto.IncludeCycles)
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}

	if ep.base.ExportBucket == "" || ep.base.Files == nil {
		c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
		c.Data(http.StatusOK, export.ContentType, export.Body)
		return
	}

	key, err := report.Publish(c.Request.Context(), ep.base.Files, ep.base.ExportBucket, export)
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, web.NewSuccessResponse(gin.H{
		"bucket":   ep.base.ExportBucket,
		"key":      key,
		"filename": export.Filename,
	}))
}

package employee

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
	r.GET("/employees", endpoint.List)
	r.GET("/employees/:id", endpoint.Find)

	admin := r.Group("", middlewares.RequireRole(security.RoleAdmin))
	admin.POST("/employees", endpoint.Create)
	admin.DELETE("/employees/:id", endpoint.Deactivate)
}

type EmployeeDTO struct {
	EmployeeID string `json:"employeeId" binding:"required,max=20"`
	Name       string `json:"name" binding:"required,max=100"`
	Email      string `json:"email" binding:"omitempty,email"`
	Department string `json:"department" binding:"max=100"`
	Position   string `json:"position" binding:"max=100"`
}

func (ep *Endpoint) List(c *gin.Context) {
	employees, err := ep.base.Tracker.ListEmployees(c.Request.Context(), c.Query("includeInactive") == "true")
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSearchResponse(employees, int64(len(employees))))
}

func (ep *Endpoint) Find(c *gin.Context) {
	emp, err := ep.base.Tracker.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(emp))
}

func (ep *Endpoint) Create(c *gin.Context) {
	var dto EmployeeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		ep.base.BadRequest(c, err)
		return
	}

	emp, err := ep.base.Tracker.CreateEmployee(c.Request.Context(), model.Employee{
		Code:       dto.EmployeeID,
		Name:       dto.Name,
		Email:      dto.Email,
		Department: dto.Department,
		Position:   dto.Position,
	})
	if err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, web.NewSuccessResponse(emp))
}

func (ep *Endpoint) Deactivate(c *gin.Context) {
	if err := ep.base.Tracker.DeactivateEmployee(c.Request.Context(), c.Param("id")); err != nil {
		ep.base.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}

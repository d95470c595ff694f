package router

import (
	"net/http"

	"axiapac.com/timetracker/timetracking/web/common"
	"axiapac.com/timetracker/timetracking/web/handlers/businesshours"
	"axiapac.com/timetracker/timetracking/web/handlers/employee"
	"axiapac.com/timetracker/timetracking/web/handlers/punch"
	"axiapac.com/timetracker/timetracking/web/handlers/report"
	"axiapac.com/timetracker/timetracking/web/handlers/session"
	"axiapac.com/timetracker/web/middlewares"
	"github.com/gin-gonic/gin"
)

const APIPrefix = "/api/v1"

// New builds the API engine. Everything under APIPrefix needs a signed
// identity token.
func New(h *common.Handler, jwtSecret []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if h.Logger != nil {
		r.Use(middlewares.RequestLogger(h.Logger))
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group(APIPrefix)
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		punch.Register(protected, h)
		employee.Register(protected, h)
		session.Register(protected, h)
		businesshours.Register(protected, h)
		report.Register(protected, h)
	}

	return r
}

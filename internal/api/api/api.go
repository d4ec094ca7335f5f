package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wb-go/wbf/ginext"

	"campusevents/cmd/middleware"
	"campusevents/internal/auth"
	"campusevents/internal/service"
)

type Routers struct {
	Service service.Service
	Tokens  *auth.Manager
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())

	authRequired := middleware.RequireAuth(r.Tokens)

	apiGroup := app.Group("/api")

	apiGroup.POST("/auth/student/signup", r.Service.StudentSignup)
	apiGroup.POST("/auth/student/login", r.Service.StudentLogin)
	apiGroup.POST("/auth/admin/signup", r.Service.AdminSignup)
	apiGroup.POST("/auth/admin/login", r.Service.AdminLogin)

	apiGroup.POST("/events", r.Service.CreateEvent)
	apiGroup.GET("/events", r.Service.GetAllEvents)
	apiGroup.GET("/events/my-registrations", authRequired, r.Service.GetMyRegistrations)
	apiGroup.POST("/events/:id/register", authRequired, r.Service.RegisterForEvent)
	apiGroup.DELETE("/events/:id/unregister", authRequired, r.Service.UnregisterFromEvent)
	apiGroup.GET("/events/:id/registrations", r.Service.GetEventRegistrations)
	apiGroup.GET("/events/:id/attendance", r.Service.GetEventAttendance)
	apiGroup.POST("/events/:id/attendance", r.Service.MarkEventAttendance)
	apiGroup.POST("/events/:id/feedback", authRequired, r.Service.SubmitFeedback)
	apiGroup.GET("/events/:id/my-feedback", authRequired, r.Service.GetMyEventFeedback)
	apiGroup.GET("/events/:id/feedback", r.Service.GetEventFeedback)
	apiGroup.GET("/events/:id", r.Service.GetEvent)
	apiGroup.PUT("/events/:id", r.Service.UpdateEvent)
	apiGroup.DELETE("/events/:id", r.Service.DeleteEvent)

	apiGroup.GET("/feedback/my-feedback", authRequired, r.Service.GetMyFeedback)

	apiGroup.GET("/reports/popularity", r.Service.EventPopularityReport)
	apiGroup.GET("/reports/students/:id", r.Service.StudentParticipationReport)
	apiGroup.GET("/reports/top-students", r.Service.TopStudentsReport)
	apiGroup.GET("/reports/events/:id", r.Service.EventReport)
	apiGroup.GET("/reports/dashboard", r.Service.DashboardStats)

	apiGroup.GET("/students", r.Service.GetAllStudents)
	apiGroup.GET("/students/:id", r.Service.GetStudent)

	apiGroup.GET("/health", r.Service.Health)

	app.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return app
}

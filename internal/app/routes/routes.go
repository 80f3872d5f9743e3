package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/opencampus/coursehub/internal/app/controllers"
	"github.com/opencampus/coursehub/internal/app/models/dto"
	"github.com/opencampus/coursehub/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures all application routes. Role and ownership gates
// live in the services, so the route tree only distinguishes public from
// authenticated endpoints.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	programController *controllers.ProgramController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})

	// Prometheus metrics (public)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		programs := authenticated.Group("/programs")
		{
			programs.POST("", programController.CreateProgram)
			programs.PUT("", programController.UpdateProgram)
			programs.GET("", programController.GetAllPrograms)
			programs.GET("/:id", programController.GetProgramByID)
			programs.DELETE("/:id", programController.DeleteProgram)
		}

		courses := authenticated.Group("/courses")
		{
			courses.POST("", courseController.CreateCourse)
			courses.PUT("", courseController.UpdateCourse)
			courses.GET("", courseController.GetAllCourses)
			courses.GET("/:id", courseController.GetCourseByID)
			courses.DELETE("/:id", courseController.DeleteCourse)
		}

		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.POST("", enrollmentController.CreateEnrollment)
			enrollments.PUT("", enrollmentController.UpdateEnrollment)
			enrollments.GET("", enrollmentController.GetAllEnrollments)
			enrollments.GET("/:id", enrollmentController.GetEnrollmentByID)
			enrollments.DELETE("/:id", enrollmentController.DeleteEnrollment)
		}

		search := authenticated.Group("/_search")
		{
			search.GET("/programs", programController.SearchPrograms)
			search.GET("/courses", courseController.SearchCourses)
			search.GET("/enrollments", enrollmentController.SearchEnrollments)
		}
	}
}

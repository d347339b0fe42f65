package http

import (
	"time"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers"
	assignmentctrl "github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers/assignment"
	authctrl "github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers/auth"
	bidctrl "github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers/bid"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers/middleware"
	usersctrl "github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers/users"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(config))

	authProvider := middleware.NewAuthProvider(l, u.AuthService)

	statusController := controllers.NewStatusHandler()
	authController := authctrl.NewAuthHandler(l, u.AuthService)
	userController := usersctrl.NewUserHandler(l, u.UserService)
	assignmentController := assignmentctrl.NewAssignmentHandler(l, u.AssignmentService)
	bidController := bidctrl.NewBidHandler(l, u.BidService)

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		v1.POST("/register", authController.Register)
		v1.POST("/login", authController.Login)
		v1.POST("/auth/refresh", authController.Refresh)
		v1.GET("/session", authProvider.AuthMiddleware, authController.Session)
		v1.POST("/logout", authProvider.AuthMiddleware, authController.Logout)

		users := v1.Group("/users", authProvider.AuthMiddleware)
		{
			users.GET("", middleware.RequireRoles(models.AdminRole), userController.List)
			users.GET("/:user_id", middleware.RequireRoles(models.AdminRole), userController.ByID)
			users.PATCH("/:user_id", userController.Patch)
			users.DELETE("/:user_id", middleware.RequireRoles(models.AdminRole), userController.Delete)
		}

		assignments := v1.Group("/assignments", authProvider.AuthMiddleware)
		{
			assignments.GET("", assignmentController.List)
			assignments.GET("/:assignment_id", assignmentController.ByID)
			assignments.GET("/:assignment_id/bids", bidController.ListForAssignment)

			assignments.POST("/upload/:assignment_id",
				middleware.RequireRoles(models.WriterRole, models.ClientRole),
				assignmentController.Upload)

			client := assignments.Group("", middleware.RequireRoles(models.ClientRole))
			{
				client.POST("", assignmentController.Create)
				client.PUT("/:assignment_id", assignmentController.Update)
				client.DELETE("/:assignment_id", assignmentController.Delete)
				client.PATCH("/:assignment_id/complete", assignmentController.Complete)
				client.PATCH("/:assignment_id/cancel", assignmentController.Cancel)
			}
		}

		bids := v1.Group("/bids", authProvider.AuthMiddleware)
		{
			bids.GET("", bidController.List)
			bids.POST("", middleware.RequireRoles(models.WriterRole), bidController.Place)
			bids.PATCH("/:bid_id/accept", middleware.RequireRoles(models.ClientRole), bidController.Accept)
			bids.PATCH("/:bid_id/reject", middleware.RequireRoles(models.ClientRole), bidController.Reject)
		}
	}
	return r
}

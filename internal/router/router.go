package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/project-tracker-api/internal/handlers"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
)

// Deps are the collaborators the HTTP layer is built from
type Deps struct {
	Users    handlers.UserService
	Projects handlers.ProjectService
	Tasks    handlers.TaskService
	Gate     *middleware.Gate
	Metrics  *middleware.Metrics
	Log      logrus.FieldLogger
}

// New builds the gin engine with every API route mounted
func New(deps Deps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestLogger(deps.Log))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	r.Use(middleware.Recovery(deps.Log))
	r.Use(middleware.HandleErrors(deps.Log))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Project Tracker API is running",
		})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", deps.Metrics.Handler())
	}

	userHandler := handlers.NewUserHandler(deps.Users)
	projectHandler := handlers.NewProjectHandler(deps.Projects)
	taskHandler := handlers.NewTaskHandler(deps.Tasks)

	api := r.Group("")
	api.Use(middleware.RequireBody())
	{
		users := api.Group("/user")
		{
			users.POST("/registration", userHandler.Register)
			users.POST("/authentication", userHandler.Authenticate)
			users.POST("/delete", deps.Gate.RequireAdmin(), userHandler.Delete)
		}

		projects := api.Group("/project")
		projects.Use(deps.Gate.RequireAdmin())
		{
			projects.POST("/create", projectHandler.Create)
			projects.POST("/update", projectHandler.Update)
			projects.POST("/delete", projectHandler.Delete)
			projects.POST("/addUser", projectHandler.AddUser)
			projects.POST("/deleteUser", projectHandler.DeleteUser)
		}

		tasks := api.Group("/task")
		tasks.Use(deps.Gate.RequireAuth())
		{
			tasks.POST("/create", taskHandler.Create)
			tasks.POST("/addUser", taskHandler.AddUser)
			tasks.POST("/deleteUser", taskHandler.DeleteUser)
			tasks.POST("/updateStatus", taskHandler.UpdateStatus)
			tasks.POST("/updateDeadline", taskHandler.UpdateDeadline)
			tasks.POST("/updateProject", taskHandler.UpdateProject)
			tasks.POST("/deleteTask", taskHandler.Delete)
		}
	}

	return r
}

package routes

import (
	"github.com/gin-gonic/gin"

	projectshttp "github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/http"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/templates"
)

type V1Deps struct {
	// Auth resolves the user for every /projects route.
	Auth     gin.HandlerFunc
	Projects projectshttp.ProjectService
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")

	templates.Register(api.Group("/templates"))

	projectsGroup := api.Group("/projects")
	if dep.Auth != nil {
		projectsGroup.Use(dep.Auth)
	}
	projectshttp.New(dep.Projects).Register(projectsGroup)
}

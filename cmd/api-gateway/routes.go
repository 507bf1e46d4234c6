package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/classroom-api/api/swagger"
	"github.com/noah-isme/classroom-api/internal/handler"
	"github.com/noah-isme/classroom-api/internal/middleware"
	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/pkg/config"
)

type routeDeps struct {
	auth          middleware.TokenValidator
	limit         gin.HandlerFunc
	departments   *handler.DepartmentHandler
	subjects      *handler.SubjectHandler
	users         *handler.UserHandler
	classes       *handler.ClassHandler
	observability *handler.MetricsHandler
}

func registerRoutes(r *gin.Engine, cfg *config.Config, deps routeDeps) {
	r.GET("/health", deps.observability.Health)
	r.GET("/ready", deps.observability.Ready)
	r.GET("/metrics", deps.observability.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	if deps.limit != nil {
		api.Use(deps.limit)
	}
	api.Use(middleware.JWT(deps.auth))

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	staff := middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin)

	departments := api.Group("/departments")
	departments.GET("", deps.departments.List)
	departments.POST("", adminOnly, deps.departments.Create)
	departments.DELETE("/:id", adminOnly, deps.departments.Delete)

	subjects := api.Group("/subjects")
	subjects.GET("", deps.subjects.List)
	subjects.POST("", adminOnly, deps.subjects.Create)
	subjects.DELETE("/:id", adminOnly, deps.subjects.Delete)

	api.GET("/users", deps.users.List)

	classes := api.Group("/classes")
	classes.GET("", deps.classes.List)
	classes.POST("", staff, deps.classes.Create)
	classes.GET("/:id", deps.classes.Get)
	classes.PUT("/:id", staff, deps.classes.Update)
	classes.GET("/:id/users", deps.classes.Members)
	classes.GET("/:id/users/export", staff, deps.classes.ExportMembers)
}

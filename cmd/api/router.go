package main

import (
	"localbiz-backend/internal/infrastructure/metrics"
	"localbiz-backend/internal/shared/middleware"
	"localbiz-backend/internal/web"
	"localbiz-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) (*gin.Engine, error) {
	router := gin.New()

	templates, err := web.LoadTemplates(c.Media.URL)
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(templates)

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.Recovery(c.PagesHandler.ServerErrorPage),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		c.Auth.Session(),
	)

	web.SetNotFoundData(c.PagesHandler.NotFoundData)
	router.NoRoute(c.PagesHandler.NotFound)

	router.StaticFS("/static", web.Static())
	if c.Config.Media.Backend == "local" {
		router.Static("/media", c.Config.Media.Root)
	}
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	setupPageRoutes(router, c)
	setupAccountRoutes(router, c)
	setupBusinessRoutes(router, c)
	setupCategoryRoutes(router, c)
	setupReviewRoutes(router, c)
	setupSearchRoutes(router, c)
	setupAPIRoutes(router, c)
	setupStaffRoutes(router, c)

	return router, nil
}

// ========================================
// PAGES
// ========================================
func setupPageRoutes(r *gin.Engine, c *container.Container) {
	h := c.PagesHandler

	r.GET("/", h.Home)
	r.GET("/about/", h.About)
	r.GET("/contact/", h.ContactPage)
	r.POST("/contact/", h.Contact)
	r.GET("/privacy/", h.Privacy)
	r.GET("/terms/", h.Terms)
	r.GET("/help/", h.Help)
	r.GET("/pricing/", h.Pricing)
	r.GET("/maintenance/", h.Maintenance)
	r.POST("/newsletter/signup/", h.Newsletter)

	r.GET("/health/", h.Health)
	r.GET("/health/status/", h.HealthStatus)
	r.GET("/robots.txt", h.Robots)
}

// ========================================
// ACCOUNTS
// ========================================
func setupAccountRoutes(r *gin.Engine, c *container.Container) {
	h := c.UserHandler

	accounts := r.Group("/accounts")
	{
		accounts.GET("/login/", h.LoginPage)
		accounts.POST("/login/", h.Login)
		accounts.GET("/register/", h.RegisterPage)
		accounts.POST("/register/", h.Register)
		accounts.POST("/logout/", h.Logout)

		private := accounts.Group("", middleware.LoginRequired())
		private.GET("/dashboard/", h.Dashboard)
		private.GET("/profile/", h.Profile)
	}
}

// ========================================
// BUSINESSES
// ========================================
func setupBusinessRoutes(r *gin.Engine, c *container.Container) {
	h := c.BusinessHandler

	businesses := r.Group("/businesses")
	{
		businesses.GET("/", c.PagesHandler.Home)
		businesses.GET("/list/", h.List)
		businesses.GET("/search/ajax/", h.SearchAjax)
		businesses.GET("/:slug/", h.Detail)

		owner := businesses.Group("", middleware.LoginRequired())
		owner.GET("/create/", h.CreatePage)
		owner.POST("/create/", h.Create)
		owner.GET("/update/:slug/", h.UpdatePage)
		owner.POST("/update/:slug/", h.Update)
		owner.GET("/delete/:slug/", h.DeletePage)
		owner.POST("/delete/:slug/", h.Delete)
	}
}

// ========================================
// CATEGORIES
// ========================================
func setupCategoryRoutes(r *gin.Engine, c *container.Container) {
	r.GET("/categories/", c.CategoryHandler.List)
	r.GET("/categories/:slug/", c.CategoryHandler.Detail)
}

// ========================================
// REVIEWS
// ========================================
func setupReviewRoutes(r *gin.Engine, c *container.Container) {
	h := c.ReviewHandler

	r.GET("/reviews/", h.List)
	reviews := r.Group("/reviews", middleware.LoginRequired())
	{
		reviews.GET("/create/", h.CreatePage)
		reviews.POST("/create/", h.Create)
	}
}

// ========================================
// SEARCH
// ========================================
func setupSearchRoutes(r *gin.Engine, c *container.Container) {
	h := c.SearchHandler

	r.GET("/search/", h.Page)
	r.GET("/search/global/", h.Global)
	r.GET("/ajax/location-autocomplete/", h.LocationAutocomplete)
}

// ========================================
// API
// ========================================
func setupAPIRoutes(r *gin.Engine, c *container.Container) {
	h := c.APIHandler

	api := r.Group("/api", c.Auth.Bearer())
	{
		api.POST("/auth/token/", c.UserHandler.Token)

		// Đọc thì public, ghi thì cần session hoặc bearer token
		api.GET("/businesses/", h.ListBusinesses)
		api.GET("/categories/", h.ListCategories)
		api.GET("/reviews/", h.ListReviews)

		write := api.Group("", middleware.APIWriteAuth())
		write.POST("/businesses/", h.CreateBusiness)
		write.POST("/categories/", h.CreateCategory)
		write.POST("/reviews/", h.CreateReview)
	}
}

// ========================================
// STAFF (MODERATION)
// ========================================
func setupStaffRoutes(r *gin.Engine, c *container.Container) {
	h := c.ModerationHandler

	staff := r.Group("/staff", middleware.LoginRequired(), middleware.StaffRequired())
	{
		staff.GET("/", h.Dashboard)

		staff.GET("/businesses/", h.Businesses)
		staff.GET("/businesses/export/", h.Export)
		staff.POST("/businesses/:id/approve/", h.ApproveBusiness)
		staff.POST("/businesses/:id/deactivate/", h.DeactivateBusiness)

		staff.GET("/reviews/", h.Reviews)
		staff.POST("/reviews/:id/approve/", h.ApproveReview)

		staff.POST("/categories/:slug/delete/", c.CategoryHandler.Delete)
	}
}

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"localbiz-backend/internal/domains/pages/service"
	"localbiz-backend/internal/web"
	"localbiz-backend/pkg/logger"
)

type FAQItem struct {
	Question string
	Answer   string
}

type Plan struct {
	Name        string
	Price       string
	Description string
	Features    []string
	Popular     bool
}

var faqItems = []FAQItem{
	{"How do I add my business to the directory?", `Sign up for an account and click "Add business" in the navigation menu. Fill out the form with your business details and submit for review.`},
	{"How long does it take for my business to be approved?", "Business listings are typically reviewed and approved within 24-48 hours of submission."},
	{"Can I edit my business information after it's published?", "Yes, you can edit your business information at any time from your dashboard. Changes may require re-approval."},
	{"How do I respond to reviews?", "Currently, business owners can contact reviewers directly or address concerns by updating their business information."},
	{"Is there a cost to list my business?", "Basic business listings are free. We also offer premium features for enhanced visibility."},
}

var pricingPlans = []Plan{
	{
		Name: "Basic", Price: "Free", Description: "Perfect for getting started",
		Features: []string{"Basic business listing", "Contact information display", "Customer reviews", "Photo upload (5 images)", "Basic analytics"},
	},
	{
		Name: "Professional", Price: "$19/month", Description: "Best for growing businesses", Popular: true,
		Features: []string{"Everything in Basic", "Featured listing placement", "Unlimited photo uploads", "Advanced analytics", "Social media integration", "Priority customer support"},
	},
	{
		Name: "Enterprise", Price: "$49/month", Description: "For established businesses",
		Features: []string{"Everything in Professional", "Multiple locations support", "Custom branding options", "API access", "Dedicated account manager", "Custom integrations"},
	},
}

// PagesHandler serves the home page, static pages, contact form and health checks.
type PagesHandler struct {
	service     *service.PagesService
	maintenance bool
}

func NewPagesHandler(svc *service.PagesService, maintenance bool) *PagesHandler {
	return &PagesHandler{service: svc, maintenance: maintenance}
}

// ========== HOME: GET / and GET /businesses/ ==========
func (h *PagesHandler) Home(c *gin.Context) {
	home, err := h.service.Home(c.Request.Context())
	if err != nil {
		web.ServerError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "home.html", gin.H{
		"Featured":   home.Featured,
		"Categories": home.Categories,
		"Stats":      home.Stats,
	})
}

// ========== STATIC PAGES ==========
func (h *PagesHandler) About(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		// trang about vẫn hiển thị khi DB lỗi
		logger.Warn("about page stats unavailable", map[string]interface{}{"error": err.Error()})
	}
	web.Render(c, http.StatusOK, "about.html", gin.H{"Title": "About LocalBiz", "Stats": stats})
}

func (h *PagesHandler) Privacy(c *gin.Context) {
	web.Render(c, http.StatusOK, "privacy.html", gin.H{"Title": "Privacy Policy"})
}

func (h *PagesHandler) Terms(c *gin.Context) {
	web.Render(c, http.StatusOK, "terms.html", gin.H{"Title": "Terms of Service"})
}

func (h *PagesHandler) Help(c *gin.Context) {
	web.Render(c, http.StatusOK, "help.html", gin.H{"Title": "Help Center", "FAQ": faqItems})
}

func (h *PagesHandler) Pricing(c *gin.Context) {
	web.Render(c, http.StatusOK, "pricing.html", gin.H{"Title": "Pricing Plans", "Plans": pricingPlans})
}

// Maintenance - 404 unless MAINTENANCE_MODE is on
func (h *PagesHandler) Maintenance(c *gin.Context) {
	if !h.maintenance {
		h.NotFound(c)
		return
	}
	web.Render(c, http.StatusOK, "maintenance.html", gin.H{"Title": "Maintenance"})
}

// ========== CONTACT: GET|POST /contact/ ==========
func (h *PagesHandler) ContactPage(c *gin.Context) {
	web.Render(c, http.StatusOK, "contact.html", gin.H{"Title": "Contact Us", "Form": service.ContactForm{}})
}

func (h *PagesHandler) Contact(c *gin.Context) {
	var form service.ContactForm
	_ = c.ShouldBind(&form)

	err := h.service.Contact(c.Request.Context(), form)
	if err == nil {
		web.AddFlash(c, web.FlashSuccess, "Thank you for your message. We'll get back to you soon!")
		c.Redirect(http.StatusFound, "/contact/")
		return
	}

	if errors.Is(err, service.ErrMissingFields) {
		web.AddFlash(c, web.FlashError, service.ErrMissingFields.Error())
	} else {
		logger.Error("contact form email error", err)
		web.AddFlash(c, web.FlashError, "Sorry, there was an error sending your message. Please try again.")
	}
	web.Render(c, http.StatusOK, "contact.html", gin.H{"Title": "Contact Us", "Form": form})
}

// ========== NEWSLETTER: POST /newsletter/signup/ ==========
func (h *PagesHandler) Newsletter(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		logger.Warn("newsletter signup: bad body", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "An error occurred. Please try again."})
		return
	}
	if err := h.service.Newsletter(c.Request.Context(), body.Email); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Thank you for subscribing to our newsletter!"})
}

// ========== HEALTH ==========

// Health - GET /health/
func (h *PagesHandler) Health(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte("OK"))
}

// HealthStatus - GET /health/status/
func (h *PagesHandler) HealthStatus(c *gin.Context) {
	now := time.Now().UTC().Format(time.RFC3339)

	count, err := h.service.BusinessCount(c.Request.Context())
	if err != nil {
		logger.Error("health check failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":    "unhealthy",
			"error":     err.Error(),
			"timestamp": now,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"timestamp":      now,
		"database":       "connected",
		"business_count": count,
	})
}

// ========== ROBOTS: GET /robots.txt ==========
func (h *PagesHandler) Robots(c *gin.Context) {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	lines := []string{
		"User-agent: *",
		"Allow: /",
		"Disallow: /staff/",
		"Disallow: /accounts/login/",
		"Disallow: /accounts/register/",
		"Disallow: /api/",
		"",
		fmt.Sprintf("Sitemap: %s://%s/sitemap.xml", scheme, c.Request.Host),
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(strings.Join(lines, "\n")))
}

// ========== ERRORS ==========

// NotFoundData feeds web.NotFound.
func (h *PagesHandler) NotFoundData(c *gin.Context) gin.H {
	nf := h.service.NotFound(c.Request.Context())
	return gin.H{
		"Title":              "Page not found",
		"PopularCategories":  nf.PopularCategories,
		"FeaturedBusinesses": nf.FeaturedBusinesses,
	}
}

// NotFound is the NoRoute handler.
func (h *PagesHandler) NotFound(c *gin.Context) {
	web.NotFound(c)
}

// ServerErrorPage is rendered by the recovery middleware.
func (h *PagesHandler) ServerErrorPage(c *gin.Context) {
	web.Render(c, http.StatusInternalServerError, "500.html", gin.H{"Title": "Server error"})
}

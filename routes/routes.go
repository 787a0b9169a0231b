package routes

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"guesthouse-backend/config"
	"guesthouse-backend/controllers"
	"guesthouse-backend/middleware"
)

var (
	// Letters (incl. Romanian diacritics) and spaces only.
	personNameRe = regexp.MustCompile(`^[a-zA-ZăâîșțĂÂÎȘȚ\s]+$`)
	phoneRe      = regexp.MustCompile(`^[\+]?[0-9\s\-\(\)]+$`)
)

// RegisterValidators installs the custom field rules on gin's binding
// engine. Safe to call more than once.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires middlewares and routes around the controllers.
func SetupRouter(
	cfg config.Config,
	log *zap.Logger,
	rc *controllers.ReservationController,
	cc *controllers.ContactController,
	rvc *controllers.ReviewController,
	ec *controllers.EmailController,
) *gin.Engine {
	RegisterValidators()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))

	origins := parseCorsOrigins(cfg.CORSOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "success",
			"message":     "API funcționează corect",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Environment,
		})
	}
	r.GET("/health", health)

	limiter := middleware.NewRateLimiter(cfg.RateLimitMax, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	api := r.Group("/api")
	api.Use(limiter.Handler())
	{
		api.GET("/health", health)

		reservations := api.Group("/reservations")
		{
			reservations.POST("", rc.CreateReservation)
			reservations.GET("", rc.GetReservations)

			// static segments must be declared next to :id
			reservations.GET("/code/:confirmationCode", rc.GetReservationByCode)
			reservations.GET("/availability/:date", rc.GetAvailability)

			reservations.GET("/:id", rc.GetReservation)
			reservations.PUT("/:id/status", rc.UpdateReservationStatus)
		}

		contact := api.Group("/contact")
		{
			contact.POST("", cc.CreateContact)
			contact.GET("", cc.GetContacts)
			contact.GET("/stats/overview", cc.GetContactStats)
			contact.GET("/:id", cc.GetContact)
			contact.PUT("/:id/status", cc.UpdateContactStatus)
			contact.PUT("/:id/priority", cc.UpdateContactPriority)
			contact.DELETE("/:id", cc.DeleteContact)
		}

		reviews := api.Group("/reviews")
		{
			reviews.POST("", rvc.CreateReview)
			reviews.GET("", rvc.GetReviews)
			reviews.GET("/admin", rvc.GetReviewsAdmin)
			reviews.GET("/stats/overview", rvc.GetReviewStats)
			reviews.PUT("/:id/status", rvc.UpdateReviewStatus)
			reviews.PUT("/:id/featured", rvc.SetReviewFeatured)
			reviews.POST("/:id/helpful", rvc.MarkReviewHelpful)
		}

		api.POST("/email/test", ec.SendTestEmail)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Endpoint-ul nu a fost găsit",
		})
	})

	return r
}

package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "busbook/internal/config"
	h "busbook/internal/http/handlers"
	"busbook/internal/http/middleware"
	"busbook/internal/repositories"
	"busbook/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsConfig())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := &h.API{
		Env:      env,
		Bookings: newBookingService(env),
	}
	if intconfig.DB != nil {
		users := repositories.UserRepository{DB: intconfig.DB}
		if err := users.EnsureSchema(); err != nil {
			log.Printf("warning: users schema: %v", err)
		}
		api.Users = &users
	}

	root := r.Group("/api")
	{
		root.GET("/health", api.Health)
		root.GET("/db-check", api.DBCheck)

		root.GET("/buses/search", api.SearchBuses)

		sessions := root.Group("/sessions")
		sessions.POST("", api.OpenSession)
		sessions.GET("/:id", api.GetSession)
		sessions.DELETE("/:id", api.AbandonSession)
		sessions.POST("/:id/seats/:seatId/toggle", api.ToggleSeat)
		sessions.POST("/:id/confirm-seats", api.ConfirmSeats)
		sessions.POST("/:id/passengers", api.SubmitPassengers)
		sessions.POST("/:id/payment", api.SubmitPayment)
		sessions.POST("/:id/back", api.StepBack)

		bookings := root.Group("/bookings")
		bookings.GET("", api.ListBookings)
		bookings.GET("/stats", api.BookingStats)
		bookings.GET("/:reference", api.GetBooking)
		bookings.POST("/:reference/cancel", api.CancelBooking)
		bookings.GET("/:reference/ticket", api.DownloadTicket)

		root.GET("/dashboard/stats", api.DashboardStats)

		auth := root.Group("/auth")
		auth.POST("/register", api.Register)
		auth.POST("/login", api.Login)

		root.GET("/profile", middleware.RequireAuth([]byte(env.JWTSecret)), api.Profile)
	}

	return r
}

// newBookingService wires the booking repository, with the MySQL mirror
// attached when a database is connected. A failed warm falls back to
// memory-only rather than refusing to start.
func newBookingService(env intconfig.Env) *services.BookingService {
	var store *repositories.BookingStore
	if intconfig.DB != nil {
		s := repositories.BookingStore{DB: intconfig.DB}
		if err := s.EnsureSchema(); err != nil {
			log.Printf("warning: bookings schema: %v", err)
		} else {
			store = &s
		}
	}

	repo, err := repositories.NewBookingRepository(store)
	if err != nil {
		log.Printf("warning: failed to warm booking repository, starting memory-only: %v", err)
		repo, _ = repositories.NewBookingRepository(nil)
	}

	return services.NewBookingService(repo, env.MaxSeatsPerBooking)
}

func corsConfig() gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000", "http://127.0.0.1:3000",
			"http://localhost:5173", "http://127.0.0.1:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	return cors.New(cfg)
}

package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/docspot/docspot-api/internal/config"
	"github.com/docspot/docspot-api/internal/db"
	"github.com/docspot/docspot-api/internal/handlers"
	"github.com/docspot/docspot-api/internal/middleware"
	"github.com/docspot/docspot-api/internal/services"
	"github.com/docspot/docspot-api/internal/utils"
)

func main() {
	cfg := config.Load()
	utils.InitJWT(cfg.JWTSecret)

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	log.Println("Successfully connected to MongoDB!")

	// --- Services ---
	mailer := services.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	denylist := services.NewTokenDenylist(cfg.RedisAddr)

	h := handlers.NewHandler(database, mailer, denylist, cfg.Production())

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// --- Middleware ---
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	limiter := middleware.NewRateLimiter()
	gate := func(role string) gin.HandlerFunc {
		return middleware.RequireRole(role, denylist)
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is working!")
	})

	// --- Routes ---
	admin := r.Group("/api/admin")
	{
		admin.POST("/register", limiter.Limit(), h.Register)
		admin.POST("/login", limiter.Limit(), h.Login)
		admin.POST("/logout", h.Logout)

		admin.POST("/add-doctor", gate("admin"), h.AddDoctor)
		admin.GET("/search-doctors", gate("admin"), h.SearchDoctors)
		admin.GET("/doctors", gate("admin"), h.ListDoctors)
		admin.PUT("/update-doctor/:id", gate("admin"), h.UpdateDoctor)
		admin.DELETE("/delete-doctor/:id", gate("admin"), h.DeleteDoctor)
	}

	doctor := r.Group("/api/doctor")
	{
		doctor.POST("/login", limiter.Limit(), h.DoctorLogin)
		doctor.POST("/logout", h.Logout)

		doctor.GET("/appointments", gate("doctor"), h.DoctorAppointments)
		doctor.PATCH("/appointment-status/:id", gate("doctor"), h.UpdateAppointmentStatus)
	}

	patient := r.Group("/api/patient")
	{
		patient.POST("/register", limiter.Limit(), h.Register)
		patient.POST("/login", limiter.Limit(), h.Login)
		patient.POST("/logout", h.Logout)

		patient.GET("/doctors", h.ListDoctors) // public directory
		patient.GET("/search-doctors", gate("patient"), h.PatientSearchDoctors)
		patient.POST("/book", gate("patient"), h.BookAppointment)
		patient.GET("/profile", gate("patient"), h.Profile)
		patient.PUT("/update-profile", gate("patient"), h.UpdateProfile)
		patient.GET("/appointments", gate("patient"), h.PatientAppointments)
		patient.PUT("/cancel/:id", gate("patient"), h.CancelAppointment)
	}

	log.Printf("Starting server on port %s", cfg.APIPort)
	if err := r.Run(":" + cfg.APIPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

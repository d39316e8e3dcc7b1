package api

import (
	"log"

	"github.com/courseforge/courseforge/config"
	"github.com/courseforge/courseforge/infra/queue"
	"github.com/courseforge/courseforge/internal/api/rest/handlers"
	"github.com/courseforge/courseforge/internal/clients/google"
	"github.com/courseforge/courseforge/internal/domain"
	"github.com/courseforge/courseforge/internal/helper"
	"github.com/courseforge/courseforge/internal/repository"
	"github.com/courseforge/courseforge/internal/services"
	"github.com/courseforge/courseforge/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/stripe/stripe-go/v79/client"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260115

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Course{},
		&domain.CourseVideo{},
		&domain.OTP{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	cld, err := cloudinary.NewFromURL(cfg.CloudinaryUrl)
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewUploader(cld)

	stripeClient := &client.API{}
	stripeClient.Init(cfg.StripeSecret, nil)

	googleVerifier := google.NewVerifier(cfg.GoogleClientID)

	authHelper := helper.SetupAuth(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	courseRepo := repository.NewCourseRepository(db)

	stopSweep := make(chan struct{})
	defer close(stopSweep)
	repository.StartOTPSweeper(otpRepo, cfg.OtpTTL, stopSweep)

	// ---------- Services ----------
	authSvc := services.NewAuthService(userRepo, otpRepo, kafkaProducer, authHelper, cfg.OtpTTL)
	googleSvc := services.NewGoogleAuthService(userRepo, googleVerifier, authHelper)
	courseSvc := services.NewCourseService(courseRepo, userRepo, up)
	paymentSvc := services.NewPaymentService(stripeClient, courseRepo, cfg.StripeCurrency)

	// ---------- Handlers ----------
	handlers.NewAuthHandler(authSvc, googleSvc, authHelper).SetupRoutes(app)
	handlers.NewCourseHandler(courseSvc, authHelper).SetupRoutes(app)
	handlers.NewTeacherHandler(courseSvc, authHelper).SetupRoutes(app)
	handlers.NewPaymentHandler(paymentSvc, authHelper).SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

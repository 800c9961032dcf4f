package main

import (
	"log"

	api "warranto-backend/cmd/api"
	alertdomain "warranto-backend/internal/alert/domain"
	alertRepo "warranto-backend/internal/alert/repository"
	"warranto-backend/internal/alert/scheduler"
	alertUsecase "warranto-backend/internal/alert/usecase"
	devicedomain "warranto-backend/internal/device/domain"
	deviceRepo "warranto-backend/internal/device/repository"
	"warranto-backend/internal/notification"
	tenantdomain "warranto-backend/internal/tenant/domain"
	warrantydomain "warranto-backend/internal/warranty/domain"
	warrantyRepo "warranto-backend/internal/warranty/repository"
	"warranto-backend/pkg/config"
	"warranto-backend/pkg/database"
	"warranto-backend/pkg/fcm"
	"warranto-backend/pkg/mailer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&tenantdomain.Tenant{}, &warrantydomain.Warranty{}, &alertdomain.NotificationSettings{}, &devicedomain.DeviceToken{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	settingsRepository := alertRepo.NewNotificationSettingsRepository(db)
	deviceTokenRepository := deviceRepo.NewDeviceTokenRepository(db)
	warrantyRepository := warrantyRepo.NewGormWarrantyRepository(db)

	// Email channel (optional, disabled without SMTP config)
	var emailChannel notification.EmailChannel
	if cfg.SMTPHost != "" {
		smtpMailer := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
		emailChannel = notification.NewExpiryEmailSender(smtpMailer)
		log.Println("[Mailer] SMTP transport configured")
	} else {
		log.Println("[WARN] SMTP_HOST not configured, email notifications disabled")
	}

	// Push channel (optional, disabled without Firebase credentials)
	var pushChannel notification.PushChannel
	if cfg.FirebaseCredentials != "" {
		fcmClient, err := fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		} else {
			pushChannel = notification.NewExpiryPushSender(fcmClient)
		}
	} else {
		log.Println("[WARN] No Firebase credentials configured, push notifications disabled")
	}

	// Start the daily alert scheduler
	alertScheduler := scheduler.NewAlertScheduler(
		settingsRepository,
		warrantyRepository,
		deviceTokenRepository,
		emailChannel,
		pushChannel,
		cfg.NotificationTime,
	)
	alertScheduler.Start()
	defer alertScheduler.Stop()

	// Initialize use case and HTTP handler
	alertUsecaseInstance := alertUsecase.NewAlertUsecase(settingsRepository, deviceTokenRepository, warrantyRepository)
	handler := api.NewHandler(alertUsecaseInstance, alertScheduler)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

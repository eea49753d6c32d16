package main

import (
	"fmt"
	"log"

	"github.com/elimuhub/homework_go_server/config"
	"github.com/elimuhub/homework_go_server/internal/api"
	"github.com/elimuhub/homework_go_server/internal/api/handler"
	"github.com/elimuhub/homework_go_server/internal/database"
	"github.com/elimuhub/homework_go_server/internal/pkg/cron"
	"github.com/elimuhub/homework_go_server/internal/pkg/email"
	"github.com/elimuhub/homework_go_server/internal/pkg/mpesa"
	"github.com/elimuhub/homework_go_server/internal/pkg/oss"
	"github.com/elimuhub/homework_go_server/internal/pkg/queue"
	"github.com/elimuhub/homework_go_server/internal/repository"
	"github.com/elimuhub/homework_go_server/internal/service"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	jobQueue := queue.NewQueue(rdb, cfg.Queue.QuestionQueue)

	var emailSvc *email.Service
	if cfg.Email.SMTPHost != "" {
		emailSvc = email.NewService(&cfg.Email)
		log.Println("Email service initialized")
	}

	var mpesaClient *mpesa.Client
	if cfg.Mpesa.ConsumerKey != "" {
		mpesaClient = mpesa.NewClient(&cfg.Mpesa)
		log.Println("M-Pesa client initialized")
	}

	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	entitlementService := service.NewEntitlementService(userRepo, cfg)
	authService := service.NewAuthService(userRepo, emailSvc, cfg)
	userService := service.NewUserService(userRepo, childRepo, entitlementService)
	childService := service.NewChildService(childRepo)
	questionService := service.NewQuestionService(questionRepo, childRepo, userRepo, entitlementService, jobQueue, cfg)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo, cfg)
	paymentService := service.NewPaymentService(paymentRepo, userRepo, subscriptionService, mpesaClient, cfg)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	childHandler := handler.NewChildHandler(childService)
	questionHandler := handler.NewQuestionHandler(questionService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	uploadHandler := handler.NewUploadHandler(ossClient)

	cronService := cron.NewService(
		subscriptionService,
		questionRepo,
		userRepo,
		emailSvc,
		cfg.Report.Enabled && emailSvc != nil,
		cfg.Report.Hour,
	)
	cronService.Start()
	defer cronService.Stop()

	router := api.NewRouter(
		authHandler,
		userHandler,
		childHandler,
		questionHandler,
		paymentHandler,
		subscriptionHandler,
		uploadHandler,
		cfg,
	)
	engine := router.Setup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

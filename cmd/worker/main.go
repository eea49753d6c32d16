package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elimuhub/homework_go_server/config"
	"github.com/elimuhub/homework_go_server/internal/database"
	"github.com/elimuhub/homework_go_server/internal/pkg/ai"
	"github.com/elimuhub/homework_go_server/internal/pkg/email"
	"github.com/elimuhub/homework_go_server/internal/pkg/pubsub"
	"github.com/elimuhub/homework_go_server/internal/pkg/queue"
	"github.com/elimuhub/homework_go_server/internal/repository"
	"github.com/elimuhub/homework_go_server/internal/worker"
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
	publisher := pubsub.NewPublisher(rdb)
	aiClient := ai.NewClient(&cfg.AI)

	var emailSvc *email.Service
	if cfg.Email.SMTPHost != "" {
		emailSvc = email.NewService(&cfg.Email)
	}

	questionRepo := repository.NewQuestionRepository(db)
	userRepo := repository.NewUserRepository(db)

	processor := worker.NewProcessor(questionRepo, userRepo, aiClient, emailSvc, publisher, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	log.Printf("Worker started, max workers: %d", cfg.Queue.MaxWorkers)

	for i := 0; i < cfg.Queue.MaxWorkers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("Worker %d shutting down", workerID)
					return
				default:
					msg, err := jobQueue.Pop(ctx, 5*time.Second)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("Worker %d: failed to pop job: %v", workerID, err)
						continue
					}

					if msg == nil {
						continue
					}

					log.Printf("Worker %d: processing question %d", workerID, msg.QuestionID)
					if err := processor.Process(ctx, msg); err != nil {
						log.Printf("Worker %d: question %d failed: %v", workerID, msg.QuestionID, err)
					}
				}
			}
		}(i)
	}

	<-ctx.Done()
	log.Println("Worker shutdown complete")
}

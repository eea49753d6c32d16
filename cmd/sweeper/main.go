package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/elimuhub/homework_go_server/config"
	"github.com/elimuhub/homework_go_server/internal/database"
	"github.com/elimuhub/homework_go_server/internal/model"
	"github.com/elimuhub/homework_go_server/internal/repository"
	"github.com/elimuhub/homework_go_server/internal/service"
)

var dryRun = flag.Bool("dry-run", false, "List due subscriptions without expiring them")

// One-shot subscription expiry sweep, for running from system cron or
// by hand when the in-process scheduler is disabled.
func main() {
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	subscriptionRepo := repository.NewSubscriptionRepository(db)
	userRepo := repository.NewUserRepository(db)

	now := time.Now()

	if *dryRun {
		due, err := subscriptionRepo.ListDue(now)
		if err != nil {
			log.Fatalf("List due subscriptions: %v", err)
		}
		for _, sub := range due {
			log.Printf("would expire subscription %d (user %d, %s, ended %s)",
				sub.ID, sub.UserID, sub.PlanType, sub.EndDate.Format(time.RFC3339))
		}
		log.Printf("Dry run: %d subscriptions due", len(due))
		return
	}

	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo, cfg)
	expired, err := subscriptionService.SweepExpired(now)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}

	var remaining int64
	db.Model(&model.Subscription{}).Where("status = ?", model.StatusActive).Count(&remaining)
	log.Printf("Sweep completed: expired %d, %d still active", expired, remaining)
}

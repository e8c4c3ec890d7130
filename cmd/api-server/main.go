package main

import (
	"context"
	"log"

	"kartel-backend/internal/api"
	"kartel-backend/internal/api/router"
	"kartel-backend/internal/database"
	"kartel-backend/internal/env"
	"kartel-backend/internal/logger"
	"kartel-backend/internal/notify"
	"kartel-backend/internal/queue"
	"kartel-backend/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

func main() {
	godotenv.Load()

	zapLogger := logger.New(env.Get(env.LogLevel), env.Get(env.LogFormat))
	defer zapLogger.Sync()

	queueManager := queue.NewRequestQueueManager(100, 10, zapLogger)

	db, err := database.NewDatabase(database.ConfigFromEnv())
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}
	recordStore := store.NewDynamoStore(db, env.GetOrDefault(env.RecordsTable, "kartel-records"))

	ctx := context.Background()
	region := env.Get(env.AWSRegion)

	var email notify.EmailSender
	if from := env.Get(env.EmailFrom); from != "" {
		sender, err := notify.NewSESEmailSender(ctx, region, from)
		if err != nil {
			log.Fatalf("ses init failed: %v", err)
		}
		email = sender
	} else {
		zapLogger.Warn("EMAIL_FROM not set, outbound email disabled")
	}

	var push notify.PushSender
	if pushSender, err := notify.NewSNSPushSender(ctx, region); err != nil {
		zapLogger.Warn("sns init failed, push disabled", zap.Error(err))
	} else {
		push = pushSender
	}

	server := api.NewAPIServer(
		":8080",
		queueManager,
		recordStore,
		email,
		push,
		zapLogger,
		router.UtilsRoutes(apiPrefix),
		router.ApplicationRoutes(apiPrefix),
		router.AuthRoutes(apiPrefix),
		router.VenueRoutes(apiPrefix),
		router.EventRoutes(apiPrefix),
		router.FAQRoutes(apiPrefix),
		router.GalleryRoutes(apiPrefix),
		router.PushRoutes(apiPrefix),
		router.AdminRoutes(apiPrefix),
	)

	server.Run()
}

// cmd/api/main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"e-waste-api-server/config"
	"e-waste-api-server/internal/api/routes"
	"e-waste-api-server/internal/auth"
	"e-waste-api-server/internal/classifier"
	"e-waste-api-server/internal/database"
	"e-waste-api-server/internal/ledger"
	"e-waste-api-server/internal/s3"
	"e-waste-api-server/internal/socket"
	"e-waste-api-server/internal/store"
)

func main() {
	// 1. Load configuration (.env first, then config.yaml + env overrides)
	godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	// 2. Connect to MongoDB
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	db := client.Database(cfg.Mongo.DBName)
	log.Println("MongoDB connected successfully")

	// 3. Wire the stores and the rewards ledger
	userStore := store.NewUserStore(db)
	binStore := store.NewBinStore(db)
	detectionStore := store.NewDetectionStore(db)
	statsStore := store.NewStatsStore(db)
	txRunner := store.NewTxRunner(client)
	ledgerSvc := ledger.NewService(userStore, detectionStore, txRunner)

	// 4. Sessions
	authMgr := auth.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration)

	// 5. Make sure an admin account exists
	if err := database.SeedAdmin(connectCtx, userStore, cfg); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// 6. Detection image storage (optional; classify still works without it)
	var s3Uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		s3Uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to initialize S3 uploader: %v", err)
		}
	} else {
		log.Println("S3 bucket not configured, detection images will not be stored")
	}

	// 7. External waste classifier
	classifierTimeout, err := time.ParseDuration(cfg.Classifier.Timeout)
	if err != nil {
		classifierTimeout = 15 * time.Second
	}
	wasteClassifier := classifier.NewHTTPClassifier(cfg.Classifier.URL, classifierTimeout)

	// 8. WebSocket hub for bin monitoring
	wsHub := socket.NewHub()

	// 9. Routes
	router := routes.SetupRouter(cfg, authMgr, ledgerSvc, userStore, binStore, statsStore, s3Uploader, wasteClassifier, wsHub)

	// 10. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

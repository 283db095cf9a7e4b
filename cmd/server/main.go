package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"labsite/internal/cache"
	"labsite/internal/config"
	"labsite/internal/content"
	"labsite/internal/model"
	"labsite/internal/repository"
	"labsite/internal/service"
	"labsite/internal/transport/rest"
)

const tokenCacheTTL = 5 * time.Minute

func main() {
	// .env is optional; real deployments configure the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	sessionRepo := repository.NewSessionRepo(db)
	if err := sessionRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Printf("Warning: Redis unreachable (%v), login throttling degraded", err)
	} else {
		log.Println("Connected to Redis")
	}

	identityRepo := buildIdentityRepo(cfg, db)
	tokenCache := cache.NewTokenCache(tokenCacheTTL, 100)
	authSvc := service.NewAuthService(identityRepo, []byte(cfg.JWTSecret), tokenCache, cfg.SessionCookie)
	sessionSvc := service.NewSessionService(sessionRepo)

	library, err := content.Load(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to load site content:", err)
	}

	router := rest.NewRouter(&rest.Container{
		SessionService: sessionSvc,
		AuthService:    authSvc,
		LoginLimiter:   cache.NewLoginLimiter(redisClient),
		Content:        library,
		AdminAPIKey:    cfg.AdminAPIKey,
		CORSOrigins:    cfg.CORSAllowedOrigins,
		Logger:         slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Println("HTTP server listening on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown:", err)
	}
	log.Println("Server stopped")
}

// buildIdentityRepo picks the static config-seeded identity list when an
// admin hash is configured, otherwise the users collection.
func buildIdentityRepo(cfg *config.Config, db *mongo.Database) repository.IdentityRepo {
	if cfg.AdminPasswordHash != "" {
		return repository.NewStaticIdentityRepo([]repository.AdminUser{
			{
				Identity: model.Identity{
					ID:    "1",
					Email: cfg.AdminEmail,
					Name:  cfg.AdminName,
					Role:  model.RoleAdmin,
				},
				PasswordHash: cfg.AdminPasswordHash,
			},
		})
	}
	return repository.NewMongoIdentityRepo(db)
}

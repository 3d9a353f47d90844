package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"party-service/config"
	"party-service/internal/handlers"
	"party-service/internal/party"
	"party-service/internal/questions"
	"party-service/internal/repository"
	ws "party-service/internal/websocket"
	"party-service/pkg/cache"
	"party-service/pkg/database"
	"party-service/pkg/messaging"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log.Println("Configuration loaded")

	pgClient, err := database.NewPostgresClient(&cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	log.Println("Connected to PostgreSQL")
	defer pgClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := pgClient.InitSchema(ctx); err != nil {
		log.Printf("Warning: Failed to initialize PostgreSQL schema: %v", err)
	} else {
		log.Println("PostgreSQL schema initialized")
	}

	partyRepo := repository.NewPartyRepository(pgClient.GetDB())

	// Parties are bound to live connections; any record that survived a
	// restart is orphaned.
	if err := partyRepo.DeleteAll(ctx); err != nil {
		log.Printf("Warning: Failed to clear stale parties: %v", err)
	} else {
		log.Println("Stale parties cleared")
	}
	cancel()

	var throttleCache party.Cache
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
	} else {
		log.Println("Connected to Redis")
		defer redisClient.Close()
		throttleCache = redisClient
	}

	var publisher party.Publisher
	rabbitClient, err := messaging.NewRabbitMQClient(&cfg.RabbitMQ)
	if err != nil {
		log.Printf("Warning: Failed to connect to RabbitMQ: %v", err)
	} else {
		log.Println("Connected to RabbitMQ")
		defer rabbitClient.Close()
		publisher = rabbitClient
	}

	bank := questions.Default()
	log.Printf("Question bank loaded: %d questions", bank.Len())

	hub := ws.NewHub()
	engine := party.NewEngine(partyRepo, hub, bank, throttleCache, publisher, cfg.RabbitMQ.Queue, cfg.Party)
	hub.SetEngine(engine)

	go hub.Run()
	log.Println("WebSocket hub started")

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "party-service",
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		if pgClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
		})
	})

	wsHandler := handlers.NewWebSocketHandler(hub)
	router.GET("/ws", wsHandler.HandleWebSocket)

	httpAddr := ":" + cfg.Server.HTTPPort
	log.Printf("Party Service HTTP server starting on port %s...", cfg.Server.HTTPPort)

	go func() {
		if err := router.Run(httpAddr); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Party service stopped")
}

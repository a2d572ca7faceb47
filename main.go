package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"session-service/internal/ai"
	"session-service/internal/config"
	"session-service/internal/db"
	"session-service/internal/handlers"
	"session-service/internal/location"
	"session-service/internal/media"
	"session-service/internal/notify"
	"session-service/internal/presence"
	"session-service/internal/repositories"
	"session-service/internal/session"
	"session-service/internal/telemetry"
	"session-service/internal/ws"
)

const serviceName = "session-service"

func main() {
	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.OTLPEndpoint, serviceName, cfg.Environment)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	database, err := db.Connect(cfg.DBDSN)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}

	userRepo := repositories.NewUserRepo(database)
	groupRepo := repositories.NewGroupRepo(database)
	messageRepo := repositories.NewMessageRepo(database)

	tracker := presence.New(cfg.RedisAddr, time.Duration(cfg.PresenceTTLSec)*time.Second, logger)

	notifier := notify.NewAMQPNotifier(cfg.AMQPURL, cfg.NotifyExchange, logger)
	defer notifier.Close()

	var responder ai.Responder
	if cfg.GeminiAPIKey == "" {
		logger.Info("no assistant credential configured, assistant disabled")
		responder = ai.Disabled{}
	} else {
		gemini, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("assistant setup failed, assistant disabled", zap.Error(err))
			responder = ai.Disabled{}
		} else {
			responder = gemini
		}
	}

	coordinator := session.New(session.Deps{
		Users:               userRepo,
		Groups:              groupRepo,
		Messages:            messageRepo,
		AI:                  responder,
		Media:               media.NewLocalDevice(),
		Location:            location.NewStatic(cfg.DefaultLat, cfg.DefaultLon, cfg.DefaultAccuracy),
		Notifier:            notifier,
		Presence:            tracker,
		Log:                 logger,
		MaintenanceUserName: cfg.MaintenanceUser,
	})

	hub := ws.NewHub()
	coordinator.Subscribe(hub.BroadcastSnapshot)

	if err := coordinator.Start(ctx); err != nil {
		logger.Fatal("failed to start session coordinator", zap.Error(err))
	}

	sessionHandler := handlers.NewSessionHandler(coordinator)
	sessionWS := ws.NewSessionWebSocketHandler(hub, coordinator)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))

	router.GET("/session", sessionHandler.GetState)
	router.POST("/session/user", sessionHandler.SetUser)
	router.POST("/session/chat", sessionHandler.SelectChat)
	router.DELETE("/session/chat", sessionHandler.ClearChat)
	router.POST("/session/visibility", sessionHandler.SetVisibility)

	router.GET("/chats", sessionHandler.ListChats)
	router.GET("/messages", sessionHandler.GetMessages)
	router.POST("/messages", sessionHandler.PostMessage)
	router.POST("/location/share", sessionHandler.ShareLocation)
	router.POST("/calls/:kind", sessionHandler.StartCall)
	router.DELETE("/calls", sessionHandler.EndCall)

	router.GET("/ws/session", sessionWS.Handle)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

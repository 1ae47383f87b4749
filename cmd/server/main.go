package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/7Pranavv/Evenoo/config"
	"github.com/7Pranavv/Evenoo/internal/auth"
	"github.com/7Pranavv/Evenoo/internal/cache"
	"github.com/7Pranavv/Evenoo/internal/database"
	"github.com/7Pranavv/Evenoo/internal/handler"
	"github.com/7Pranavv/Evenoo/internal/queue"
	"github.com/7Pranavv/Evenoo/internal/repository"
	"github.com/7Pranavv/Evenoo/internal/service"
	"github.com/7Pranavv/Evenoo/internal/worker"
	"github.com/7Pranavv/Evenoo/migrations"
	"github.com/7Pranavv/Evenoo/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

type routeRegistrar interface {
	RegisterRoutes(r *gin.Engine)
}

func main() {
	defer logger.Sync()
	log := logger.WithComponent("main")

	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.MigrateUp(ctx, pool, migrations.FS); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	defer rdb.Close()

	notificationQueue, err := newNotificationQueue(cfg, rdb)
	if err != nil {
		log.Fatal("Failed to initialize notification queue", zap.Error(err))
	}

	timeout := cfg.App.StoreTimeout
	eventRepo := repository.NewEventRepository(pool, timeout)
	ticketRepo := repository.NewTicketRepository(pool, timeout)
	registrationRepo := repository.NewRegistrationRepository(pool, timeout)
	userRepo := repository.NewUserRepository(pool, timeout)
	walletRepo := repository.NewWalletRepository(pool, timeout)
	notificationRepo := repository.NewNotificationRepository(pool, timeout)
	vendorRepo := repository.NewVendorRepository(pool, timeout)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	blacklist := cache.NewRedisTokenBlacklist(rdb)
	sessions := auth.NewSessionResolver(tokens, blacklist, userRepo, cfg.Auth.SessionTimeout)

	notificationService := service.NewNotificationService(notificationRepo, notificationQueue)
	eventService := service.NewEventService(eventRepo, notificationService)
	ticketService := service.NewTicketService(ticketRepo, eventRepo, cfg.App.TicketIDMaxAttempts)
	walletService := service.NewWalletService(walletRepo, userRepo)
	registrationService := service.NewRegistrationService(
		registrationRepo,
		eventRepo,
		ticketService,
		walletService,
		notificationService,
		cache.NewRedisSeatInventory(rdb),
	)
	draftService := service.NewDraftService(cache.NewRedisDraftStore(rdb, cfg.App.DraftTTL), eventService, userRepo)
	vendorService := service.NewVendorService(vendorRepo, userRepo, eventRepo, notificationService)
	authService := service.NewAuthService(userRepo, tokens, blacklist)

	if err := worker.NewNotificationWorker(worker.LogPusher{}, notificationQueue).Start(ctx); err != nil {
		log.Fatal("Failed to start notification worker", zap.Error(err))
	}
	worker.NewEventCompletionWorker(eventService, cfg.App.CompletionInterval).Start(ctx)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	p := ginprometheus.NewPrometheus("gin")
	// templated paths keep ticket ids and uuids out of the label set
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		if path := c.FullPath(); path != "" {
			return path
		}
		return "unmatched"
	}
	p.Use(router)

	router.Use(handler.Authenticate(sessions))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	for _, h := range []routeRegistrar{
		handler.NewAuthHandler(authService),
		handler.NewEventHandler(eventService),
		handler.NewDraftHandler(draftService),
		handler.NewRegistrationHandler(registrationService),
		handler.NewTicketHandler(ticketService),
		handler.NewWalletHandler(walletService),
		handler.NewNotificationHandler(notificationService),
		handler.NewVendorHandler(vendorService),
	} {
		h.RegisterRoutes(router)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func newNotificationQueue(cfg *config.Config, rdb *redis.Client) (queue.NotificationQueue, error) {
	if cfg.Queue.Driver == "redis" {
		return queue.NewRedisStreamNotificationQueue(rdb, cfg.Queue.ConsumerID, nil)
	}
	return queue.NewMemoryNotificationQueue(cfg.Queue.BufferSize), nil
}

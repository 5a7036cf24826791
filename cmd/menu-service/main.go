package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-catering/internal/auth"
	"ms-catering/internal/config"
	"ms-catering/internal/logger"
	"ms-catering/internal/menu"
	menuapi "ms-catering/internal/menu/api"
	menudb "ms-catering/internal/menu/db"
	"ms-catering/internal/review"
	reviewapi "ms-catering/internal/review/api"
	reviewdb "ms-catering/internal/review/db"
)

func main() {
	_ = godotenv.Load()

	log := logger.NewLogger()
	cfg := config.Load()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Error("DATABASE", "failed to open Postgres connection: "+err.Error())
		os.Exit(1)
	}
	defer sqldb.Close()

	if err := sqldb.Ping(); err != nil {
		log.Error("DATABASE", "failed to connect to Postgres: "+err.Error())
		os.Exit(1)
	}
	bunDB := bun.NewDB(sqldb, pgdialect.New())
	log.LogDatabase("CONNECT", cfg.Database.Database, "connected to Postgres")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Error("REDIS", "failed to connect to Redis: "+err.Error())
		os.Exit(1)
	}
	defer redisClient.Close()

	verifier := auth.NewVerifier(cfg.Auth.AccessTokenSecret, auth.NewTokenCache(redisClient))

	menuService := menu.NewMenuService(menudb.NewMenuStore(bunDB), log)
	reviewService := review.NewReviewService(reviewdb.NewReviewStore(bunDB), log)

	menuHandler := menuapi.NewHandler(menuService, log)
	reviewHandler := reviewapi.NewHandler(reviewService, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Browsing the menu and reading reviews needs no token.
	r.GET("/menu", menuHandler.ListItems)
	r.GET("/menu/:id", menuHandler.GetItem)
	r.GET("/reviews", reviewHandler.ListReviews)
	r.GET("/reviews/order/:orderId", reviewHandler.GetReviewByOrder)

	authed := r.Group("/", auth.GinMiddleware(verifier))
	authed.POST("/reviews", reviewHandler.CreateReview)

	admin := authed.Group("/", auth.GinRequireAdmin())
	admin.POST("/menu", menuHandler.CreateItem)
	admin.PUT("/menu/:id", menuHandler.UpdateItem)
	admin.DELETE("/menu/:id", menuHandler.DeleteItem)

	port := os.Getenv("MENU_SERVICE_PORT")
	if port == "" {
		port = ":5002"
	}
	server := &http.Server{
		Addr:         port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", "menu service listening on "+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("SERVER", "HTTP server error: "+err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("SERVER", "forced shutdown: "+err.Error())
		os.Exit(1)
	}
	log.Info("SERVER", "menu service shutdown complete")
}

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

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-catering/internal/auth"
	"ms-catering/internal/buffet"
	buffetapi "ms-catering/internal/buffet/api"
	buffetdb "ms-catering/internal/buffet/db"
	"ms-catering/internal/cart"
	cartapi "ms-catering/internal/cart/api"
	cartdb "ms-catering/internal/cart/db"
	"ms-catering/internal/config"
	"ms-catering/internal/database/migrations"
	sharedkafka "ms-catering/internal/kafka"
	"ms-catering/internal/logger"
	"ms-catering/internal/order"
	orderdb "ms-catering/internal/order/db"
	"ms-catering/internal/order/kafka"
	"ms-catering/internal/order/order_api"
	orderredis "ms-catering/internal/order/redis"
	"ms-catering/internal/stats"
	statsapi "ms-catering/internal/stats/api"
)

func main() {
	_ = godotenv.Load()

	log := logger.NewLogger()
	cfg := config.Load()

	// --- PostgreSQL ---
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Error("DATABASE", "failed to open Postgres connection: "+err.Error())
		os.Exit(1)
	}
	defer sqldb.Close()

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := sqldb.Ping(); err != nil {
		log.Error("DATABASE", "failed to connect to Postgres: "+err.Error())
		os.Exit(1)
	}
	bunDB := bun.NewDB(sqldb, pgdialect.New())
	log.LogDatabase("CONNECT", cfg.Database.Database, "connected to Postgres")

	// --- Migrations ---
	runner := migrations.NewRunner(bunDB, migrations.Options{
		MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
		SeedData:      os.Getenv("SEED_DATA") == "true",
	})
	if err := runner.Run(); err != nil {
		log.Error("DATABASE", "migrations failed: "+err.Error())
		os.Exit(1)
	}

	// --- Redis ---
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Error("REDIS", "failed to connect to Redis: "+err.Error())
		os.Exit(1)
	}
	defer redisClient.Close()

	// --- Kafka ---
	var producer *kafka.Producer
	var consumer *sharedkafka.Consumer
	if cfg.Kafka.Enabled {
		if err := sharedkafka.EnsureTopicsExist(cfg.Kafka.Brokers, []string{cfg.Kafka.Topics.OrderEvents}); err != nil {
			log.Error("KAFKA", "failed to ensure topics: "+err.Error())
		}
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.OrderEvents)
		defer producer.Close()
		consumer = sharedkafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.OrderEvents, cfg.Kafka.GroupID, log)
	} else {
		log.Info("KAFKA", "Kafka disabled, order events will not be published")
	}

	// --- Stripe ---
	order.InitStripe(cfg.Stripe.SecretKey)

	// --- Auth ---
	tokenCache := auth.NewTokenCache(redisClient)
	verifier := auth.NewVerifier(cfg.Auth.AccessTokenSecret, tokenCache)

	// --- Services ---
	cartService := cart.NewCartService(&cartdb.DB{Bun: bunDB}, log)
	buffetService := buffet.NewBuffetService(&buffetdb.DB{Bun: bunDB}, log)
	advanceLock := orderredis.NewRedis(redisClient)

	var events order.EventPublisher
	if producer != nil {
		events = producer
	}
	orderService := order.NewOrderService(
		&orderdb.DB{Bun: bunDB}, cartService, buffetService, advanceLock, events, log)

	statsService := stats.NewService(bunDB, redisClient, log)

	orderHandler := order_api.NewHandler(orderService, log)
	cartHandler := cartapi.NewHandler(cartService, log)
	buffetHandler := buffetapi.NewHandler(buffetService, log)
	statsHandler := statsapi.NewHandler(statsService, log)

	// --- Stats consumer ---
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if consumer != nil {
		go consumer.Start(consumerCtx, statsService.Apply)
		defer consumer.Close()
	}

	// --- Router ---
	r := chi.NewRouter()
	authn := auth.Middleware(verifier)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Checkout and the Stripe callback are reachable without a token.
	r.Post("/payments", orderHandler.CreateOrder)
	r.Post("/webhook/stripe", orderHandler.StripeWebhook)
	r.Get("/order-stats", statsHandler.GetOrderStats)

	r.Group(func(r chi.Router) {
		r.Use(authn)

		r.Get("/payments", orderHandler.ListByEmail)
		r.Get("/payments/latest", orderHandler.Latest)
		r.Get("/payments/buffet", orderHandler.ListBuffet)
		r.Get("/payments/{orderId}", orderHandler.GetOrder)
		r.Patch("/payments/advance/{orderId}", orderHandler.Advance)
		r.Patch("/payments/cancel/{orderId}", orderHandler.Cancel)
		r.Post("/create-payment-intent", orderHandler.CreatePaymentIntent)

		r.Post("/carts", cartHandler.Add)
		r.Get("/carts", cartHandler.List)
		r.Patch("/carts/{cartId}", cartHandler.AdjustQuantity)
		r.Delete("/carts/{cartId}", cartHandler.Delete)

		r.Post("/buffet", buffetHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)

			r.Get("/payments/all", orderHandler.ListAll)
			r.Patch("/payments/{orderId}", orderHandler.SetStatus)
			r.Get("/buffet", buffetHandler.List)
			r.Delete("/buffet/{bookingId}", buffetHandler.Delete)
			r.Get("/admin-stats", statsHandler.GetAdminStats)
		})
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", "order service listening on "+cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("SERVER", "HTTP server error: "+err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("SERVER", "shutdown signal received")

	stopConsumer()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("SERVER", "forced shutdown: "+err.Error())
		os.Exit(1)
	}
	log.Info("SERVER", "server exited gracefully")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

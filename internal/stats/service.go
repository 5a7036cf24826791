package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/uptrace/bun"

	"ms-catering/internal/logger"
	"ms-catering/internal/models"
)

const (
	keyOrdersTotal     = "stats:orders_total"
	keyRevenueTotal    = "stats:revenue_total"
	keyOrdersCancelled = "stats:orders_cancelled"
	keyOrdersByType    = "stats:orders_by_type:" // + order type
	keyDailyOrders     = "stats:daily_orders:"   // + YYYY-MM-DD
)

// OrderStats is the public counter snapshot, served straight from Redis.
type OrderStats struct {
	TotalOrders     int64   `json:"total_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	CancelledOrders int64   `json:"cancelled_orders"`
	RegularOrders   int64   `json:"regular_orders"`
	BuffetOrders    int64   `json:"buffet_orders"`
	OrdersToday     int64   `json:"orders_today"`
}

// AdminStats aggregates over the orders table and is only served to admins.
type AdminStats struct {
	OrderStats

	OrdersByStatus map[string]int     `json:"orders_by_status"`
	DailySales     []DailySalesMetric `json:"daily_sales"`
}

// DailySalesMetric contains order metrics for a single day.
type DailySalesMetric struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type Service struct {
	db     *bun.DB
	redis  *redis.Client
	logger *logger.Logger
}

func NewService(db *bun.DB, redisClient *redis.Client, log *logger.Logger) *Service {
	return &Service{db: db, redis: redisClient, logger: log}
}

// Apply folds one order lifecycle event into the Redis counters. Counter
// failures are logged and dropped so the consumer never stalls on Redis.
func (s *Service) Apply(event models.OrderEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pipe := s.redis.Pipeline()
	switch event.Type {
	case models.EventOrderCreated:
		pipe.Incr(ctx, keyOrdersTotal)
		pipe.IncrByFloat(ctx, keyRevenueTotal, event.Price)
		pipe.Incr(ctx, keyOrdersByType+string(event.OrderType))
		pipe.Incr(ctx, keyDailyOrders+event.Timestamp.Format("2006-01-02"))
	case models.EventOrderCancelled:
		pipe.Incr(ctx, keyOrdersCancelled)
		pipe.IncrByFloat(ctx, keyRevenueTotal, -event.Price)
	case models.EventOrderStatusChanged:
		// Status moves do not change the counters.
		return
	default:
		s.logger.Error("STATS", "unknown order event type: "+event.Type)
		return
	}

	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error("STATS", fmt.Sprintf("failed to apply %s for order %s: %v", event.Type, event.OrderID, err))
	}
}

// GetOrderStats reads the live counters. Missing keys read as zero.
func (s *Service) GetOrderStats(ctx context.Context) (*OrderStats, error) {
	today := time.Now().Format("2006-01-02")

	pipe := s.redis.Pipeline()
	total := pipe.Get(ctx, keyOrdersTotal)
	revenue := pipe.Get(ctx, keyRevenueTotal)
	cancelled := pipe.Get(ctx, keyOrdersCancelled)
	regular := pipe.Get(ctx, keyOrdersByType+string(models.OrderRegular))
	buffet := pipe.Get(ctx, keyOrdersByType+string(models.OrderBuffet))
	daily := pipe.Get(ctx, keyDailyOrders+today)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}

	stats := &OrderStats{}
	stats.TotalOrders, _ = total.Int64()
	stats.TotalRevenue, _ = revenue.Float64()
	stats.CancelledOrders, _ = cancelled.Int64()
	stats.RegularOrders, _ = regular.Int64()
	stats.BuffetOrders, _ = buffet.Int64()
	stats.OrdersToday, _ = daily.Int64()
	return stats, nil
}

// GetAdminStats combines the counters with aggregates over the orders
// table for the last 30 days.
func (s *Service) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	counters, err := s.GetOrderStats(ctx)
	if err != nil {
		return nil, err
	}
	stats := &AdminStats{OrderStats: *counters}

	var statusRows []struct {
		Status string `bun:"status"`
		Count  int    `bun:"count"`
	}
	err = s.db.NewSelect().
		Model((*models.Order)(nil)).
		ColumnExpr("status").
		ColumnExpr("COUNT(*) AS count").
		Group("status").
		Scan(ctx, &statusRows)
	if err != nil {
		return nil, err
	}
	stats.OrdersByStatus = make(map[string]int, len(statusRows))
	for _, row := range statusRows {
		stats.OrdersByStatus[row.Status] = row.Count
	}

	since := time.Now().AddDate(0, 0, -30)
	var dailyRows []struct {
		Date    string  `bun:"date"`
		Orders  int     `bun:"orders"`
		Revenue float64 `bun:"revenue"`
	}
	err = s.db.NewSelect().
		Model((*models.Order)(nil)).
		ColumnExpr("DATE(created_at) AS date").
		ColumnExpr("COUNT(*) AS orders").
		ColumnExpr("SUM(price) AS revenue").
		Where("created_at >= ?", since).
		Group("date").
		Order("date ASC").
		Scan(ctx, &dailyRows)
	if err != nil {
		return nil, err
	}
	stats.DailySales = make([]DailySalesMetric, 0, len(dailyRows))
	for _, row := range dailyRows {
		stats.DailySales = append(stats.DailySales, DailySalesMetric(row))
	}

	return stats, nil
}

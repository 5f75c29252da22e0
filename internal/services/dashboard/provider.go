package dashboard

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/magabrotheeeer/primetrade/internal/models"
)

var months = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// RandomProvider генерирует правдоподобные случайные данные вместо реальной торговой истории.
// Безопасен для конкурентного использования.
type RandomProvider struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomProvider создает провайдер со случайным зерном.
func NewRandomProvider() *RandomProvider {
	return NewSeededProvider(rand.Uint64(), rand.Uint64())
}

// NewSeededProvider создает провайдер с фиксированным зерном, повторяющий одну и ту же последовательность.
func NewSeededProvider(seed1, seed2 uint64) *RandomProvider {
	return &RandomProvider{rnd: rand.New(rand.NewPCG(seed1, seed2))}
}

// between возвращает число в диапазоне [lo, hi).
func (p *RandomProvider) between(lo, hi float64) float64 {
	return lo + p.rnd.Float64()*(hi-lo)
}

func round(x float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	return math.Round(x*pow) / pow
}

// TradingStats краткая статистика: 10..109 сделок, винрейт 60..90%.
func (p *RandomProvider) TradingStats(_ context.Context, _ string) (models.TradingStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return models.TradingStats{
		TotalTrades:     p.rnd.IntN(100) + 10,
		TotalProfit:     round(p.between(0, 10000), 2),
		WinRate:         round(p.between(60, 90), 1),
		ActivePositions: p.rnd.IntN(5),
	}, nil
}

// Portfolio стоимость портфеля 10000..60000 и дневное изменение в пределах ±500 (±2.5%).
func (p *RandomProvider) Portfolio(_ context.Context, _ string) (models.Portfolio, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return models.Portfolio{
		TotalValue:       round(p.between(10000, 60000), 2),
		DayChange:        round(p.between(-500, 500), 2),
		DayChangePercent: round(p.between(-2.5, 2.5), 2),
	}, nil
}

// RecentActivity три последних события относительно now.
func (p *RandomProvider) RecentActivity(_ context.Context, _ string, now time.Time) ([]models.Activity, error) {
	return []models.Activity{
		{ID: 1, Type: "trade", Description: "Bought 100 shares of AAPL", Amount: "+$15,230.50", Timestamp: now.Add(-30 * time.Minute)},
		{ID: 2, Type: "profit", Description: "Profit from TSLA position", Amount: "+$2,450.00", Timestamp: now.Add(-2 * time.Hour)},
		{ID: 3, Type: "deposit", Description: "Account deposit", Amount: "+$5,000.00", Timestamp: now.Add(-24 * time.Hour)},
	}, nil
}

// DetailedStats детальная статистика с разбивкой по 12 месяцам.
func (p *RandomProvider) DetailedStats(_ context.Context, _ string) (models.DetailedStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := p.rnd.IntN(500) + 50
	stats := models.DetailedStats{
		Overview: models.StatsOverview{
			TotalTrades:      total,
			SuccessfulTrades: min(p.rnd.IntN(300)+30, total),
			TotalProfit:      round(p.between(0, 25000), 2),
			TotalLoss:        round(p.between(0, 5000), 2),
		},
		Monthly: make([]models.MonthlyStat, 0, len(months)),
		Performance: models.Performance{
			WinRate:     round(p.between(60, 90), 1),
			AvgProfit:   round(p.between(100, 600), 2),
			AvgLoss:     round(p.between(50, 250), 2),
			SharpeRatio: round(p.between(0.5, 2.5), 2),
		},
	}
	for _, m := range months {
		stats.Monthly = append(stats.Monthly, models.MonthlyStat{
			Month:  m,
			Profit: round(p.between(0, 3000), 2),
			Trades: p.rnd.IntN(50) + 5,
		})
	}
	return stats, nil
}

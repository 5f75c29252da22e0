// Package dashboard собирает данные главной страницы и статистику пользователя
// из подключаемого провайдера данных.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
	"github.com/magabrotheeeer/primetrade/internal/models"
)

// DataProvider источник торговых данных пользователя.
type DataProvider interface {
	TradingStats(ctx context.Context, userUID string) (models.TradingStats, error)
	Portfolio(ctx context.Context, userUID string) (models.Portfolio, error)
	RecentActivity(ctx context.Context, userUID string, now time.Time) ([]models.Activity, error)
	DetailedStats(ctx context.Context, userUID string) (models.DetailedStats, error)
}

// Cache кэш собранных данных дашборда.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

var quickActions = []models.QuickAction{
	{ID: 1, Title: "New Trade", Description: "Place a new trade order", Icon: "trade"},
	{ID: 2, Title: "Deposit Funds", Description: "Add money to your account", Icon: "deposit"},
	{ID: 3, Title: "View Reports", Description: "Check your trading reports", Icon: "reports"},
	{ID: 4, Title: "Account Settings", Description: "Manage your account", Icon: "settings"},
}

// Service формирует ответы дашборда.
type Service struct {
	provider DataProvider
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// NewService создает сервис дашборда. Если cache равен nil или ttl не положителен, кэширование отключено.
func NewService(log *slog.Logger, provider DataProvider, cache Cache, ttl time.Duration) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		cacheTTL: ttl,
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func overviewKey(userUID string) string {
	return "dashboard:" + userUID
}

// Overview возвращает данные главной страницы дашборда для пользователя.
func (s *Service) Overview(ctx context.Context, user *models.User) (*models.DashboardData, error) {
	const op = "dashboard.Overview"
	log := s.log.With(slog.String("op", op), slog.String("user_uid", user.UUID))

	if s.cacheEnabled() {
		var cached models.DashboardData
		found, err := s.cache.Get(ctx, overviewKey(user.UUID), &cached)
		if err != nil {
			log.Warn("failed to read dashboard cache", sl.Err(err))
		} else if found {
			cached.User = dashboardUser(user)
			return &cached, nil
		}
	}

	stats, err := s.provider.TradingStats(ctx, user.UUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	portfolio, err := s.provider.Portfolio(ctx, user.UUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	activity, err := s.provider.RecentActivity(ctx, user.UUID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data := &models.DashboardData{
		User:           dashboardUser(user),
		Stats:          stats,
		RecentActivity: activity,
		Portfolio:      portfolio,
		QuickActions:   append([]models.QuickAction(nil), quickActions...),
	}

	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, overviewKey(user.UUID), data, s.cacheTTL); err != nil {
			log.Warn("failed to write dashboard cache", sl.Err(err))
		}
	}
	return data, nil
}

// Stats возвращает детальную статистику пользователя.
func (s *Service) Stats(ctx context.Context, user *models.User) (*models.DetailedStats, error) {
	const op = "dashboard.Stats"
	stats, err := s.provider.DetailedStats(ctx, user.UUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &stats, nil
}

func dashboardUser(u *models.User) models.DashboardUser {
	return models.DashboardUser{
		ID:          u.UUID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		MemberSince: u.CreatedAt,
		LastLogin:   u.LastLogin,
	}
}

package models

import "time"

// DashboardUser сведения о пользователе, выводимые на дашборде.
type DashboardUser struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	MemberSince time.Time  `json:"memberSince"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
}

// TradingStats краткая торговая статистика.
type TradingStats struct {
	TotalTrades     int     `json:"totalTrades"`
	TotalProfit     float64 `json:"totalProfit"`
	WinRate         float64 `json:"winRate"`
	ActivePositions int     `json:"activePositions"`
}

// Portfolio состояние портфеля.
type Portfolio struct {
	TotalValue       float64 `json:"totalValue"`
	DayChange        float64 `json:"dayChange"`
	DayChangePercent float64 `json:"dayChangePercent"`
}

// Activity запись ленты последних действий.
type Activity struct {
	ID          int       `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Timestamp   time.Time `json:"timestamp"`
}

// QuickAction быстрое действие на дашборде.
type QuickAction struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// DashboardData полный набор данных главной страницы дашборда.
type DashboardData struct {
	User           DashboardUser `json:"user"`
	Stats          TradingStats  `json:"stats"`
	RecentActivity []Activity    `json:"recentActivity"`
	Portfolio      Portfolio     `json:"portfolio"`
	QuickActions   []QuickAction `json:"quickActions"`
}

// StatsOverview общие показатели детальной статистики.
type StatsOverview struct {
	TotalTrades      int     `json:"totalTrades"`
	SuccessfulTrades int     `json:"successfulTrades"`
	TotalProfit      float64 `json:"totalProfit"`
	TotalLoss        float64 `json:"totalLoss"`
}

// MonthlyStat показатели за месяц.
type MonthlyStat struct {
	Month  string  `json:"month"`
	Profit float64 `json:"profit"`
	Trades int     `json:"trades"`
}

// Performance показатели эффективности.
type Performance struct {
	WinRate     float64 `json:"winRate"`
	AvgProfit   float64 `json:"avgProfit"`
	AvgLoss     float64 `json:"avgLoss"`
	SharpeRatio float64 `json:"sharpeRatio"`
}

// DetailedStats детальная статистика пользователя.
type DetailedStats struct {
	Overview    StatsOverview `json:"overview"`
	Monthly     []MonthlyStat `json:"monthly"`
	Performance Performance   `json:"performance"`
}

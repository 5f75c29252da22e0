package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/primetrade/internal/client/api"
	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
	"github.com/magabrotheeeer/primetrade/internal/models"
)

// Сообщения по умолчанию, если сервер не вернул своё.
const (
	MsgLoginFailed         = "Login failed"
	MsgRegistrationFailed  = "Registration failed"
	MsgProfileUpdateFailed = "Profile update failed"
)

// ErrNotAuthenticated операция требует активной сессии.
var ErrNotAuthenticated = errors.New("not authenticated")

// Backend серверная часть, с которой работает Manager. Реализуется *api.Client.
type Backend interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Me(ctx context.Context, token string) (*api.User, error)
	UpdateProfile(ctx context.Context, token, name, email string) (*api.User, error)
	Logout(ctx context.Context, token string) error
	Dashboard(ctx context.Context, token string) (*models.DashboardData, error)
	Stats(ctx context.Context, token string) (*models.DetailedStats, error)
}

// Manager применяет действия к состоянию сессии и синхронизирует токен с TokenStore.
type Manager struct {
	mu          sync.Mutex
	state       State
	backend     Backend
	store       TokenStore
	log         *slog.Logger
	subscribers map[int]func(State)
	nextID      int
}

// NewManager создает Manager с пустым состоянием. Перед работой вызывается Init.
func NewManager(backend Backend, store TokenStore, log *slog.Logger) *Manager {
	return &Manager{
		backend:     backend,
		store:       store,
		log:         log,
		subscribers: make(map[int]func(State)),
	}
}

// State возвращает копию текущего состояния.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe регистрирует fn, которая вызывается после каждого перехода.
// Возвращает функцию отписки.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.subscribers[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

// Dispatch атомарно применяет действие. LoginSuccess сохраняет токен, Logout очищает хранилище.
func (m *Manager) Dispatch(a Action) {
	const op = "session.Dispatch"

	m.mu.Lock()
	m.state = Reduce(m.state, a)
	next := m.state

	switch a := a.(type) {
	case LoginSuccess:
		if err := m.store.Save(a.Token); err != nil {
			m.log.Error("failed to persist token", slog.String("op", op), sl.Err(err))
		}
	case Logout:
		if err := m.store.Clear(); err != nil {
			m.log.Error("failed to clear token", slog.String("op", op), sl.Err(err))
		}
	}

	subs := make([]func(State), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Init восстанавливает сессию из сохранённого токена.
// Без токена запрос к серверу не выполняется. Любая ошибка проверки токена,
// включая сетевую, приводит к выходу из сессии.
func (m *Manager) Init(ctx context.Context) {
	const op = "session.Init"

	token, err := m.store.Load()
	if err != nil {
		m.log.Warn("failed to load stored token", slog.String("op", op), sl.Err(err))
		m.Dispatch(Logout{})
		return
	}
	if token == "" {
		m.Dispatch(SetLoading{Loading: false})
		return
	}

	m.Dispatch(SetLoading{Loading: true})
	user, err := m.backend.Me(ctx, token)
	if err != nil {
		m.log.Info("stored session is no longer valid", slog.String("op", op), sl.Err(err))
		m.Dispatch(Logout{})
		return
	}
	m.Dispatch(LoginSuccess{User: user, Token: token})
}

// Login выполняет вход и сохраняет сессию.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.Dispatch(SetLoading{Loading: true})
	m.Dispatch(ClearError{})

	resp, err := m.backend.Login(ctx, email, password)
	if err != nil {
		m.Dispatch(SetError{Message: messageOr(err, MsgLoginFailed)})
		return err
	}
	m.Dispatch(LoginSuccess{User: &resp.User, Token: resp.Token})
	return nil
}

// Register создает учётную запись и сразу открывает сессию.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) error {
	m.Dispatch(SetLoading{Loading: true})
	m.Dispatch(ClearError{})

	resp, err := m.backend.Register(ctx, req)
	if err != nil {
		m.Dispatch(SetError{Message: messageOr(err, MsgRegistrationFailed)})
		return err
	}
	m.Dispatch(LoginSuccess{User: &resp.User, Token: resp.Token})
	return nil
}

// Logout уведомляет сервер, если это возможно, и всегда очищает локальную сессию.
func (m *Manager) Logout(ctx context.Context) {
	const op = "session.Logout"
	if token := m.State().Token; token != "" {
		if err := m.backend.Logout(ctx, token); err != nil {
			m.log.Debug("server logout failed", slog.String("op", op), sl.Err(err))
		}
	}
	m.Dispatch(Logout{})
}

// UpdateProfile меняет имя и email. При ошибке токен остаётся прежним.
func (m *Manager) UpdateProfile(ctx context.Context, name, email string) error {
	m.Dispatch(ClearError{})

	token := m.State().Token
	if token == "" {
		m.Dispatch(SetError{Message: MsgProfileUpdateFailed})
		return ErrNotAuthenticated
	}

	user, err := m.backend.UpdateProfile(ctx, token, name, email)
	if err != nil {
		m.Dispatch(SetError{Message: messageOr(err, MsgProfileUpdateFailed)})
		return err
	}
	m.Dispatch(UpdateUser{User: user})
	return nil
}

// ClearError сбрасывает сообщение об ошибке.
func (m *Manager) ClearError() {
	m.Dispatch(ClearError{})
}

// Dashboard загружает данные дашборда для текущей сессии.
func (m *Manager) Dashboard(ctx context.Context) (*models.DashboardData, error) {
	token := m.State().Token
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	return m.backend.Dashboard(ctx, token)
}

// Stats загружает детальную статистику для текущей сессии.
func (m *Manager) Stats(ctx context.Context) (*models.DetailedStats, error) {
	token := m.State().Token
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	return m.backend.Stats(ctx, token)
}

func messageOr(err error, fallback string) string {
	if msg, ok := api.MessageOf(err); ok {
		return msg
	}
	return fallback
}

// Package api реализует HTTP-клиент PrimeTrade API для клиентских приложений.
//
// Любой ответ с кодом вне диапазона 2xx возвращается как *Error с сообщением сервера.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/primetrade/internal/models"
)

const defaultTimeout = 10 * time.Second

// Error ответ сервера с кодом ошибки.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// MessageOf возвращает сообщение сервера из err, если это *Error.
func MessageOf(err error) (string, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// User профиль пользователя в том виде, в котором его отдаёт сервер.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// AuthResponse ответ регистрации и входа.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// RegisterRequest данные регистрации.
type RegisterRequest struct {
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userResponse struct {
	User User `json:"user"`
}

type dashboardResponse struct {
	Success bool                 `json:"success"`
	Data    models.DashboardData `json:"data"`
}

type statsResponse struct {
	Success bool                 `json:"success"`
	Data    models.DetailedStats `json:"data"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Client вызывает эндпоинты API относительно baseURL, например http://localhost:8080/api.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient задаёт собственный *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New создает клиента API.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register создает учётную запись и возвращает токен сессии.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	const op = "api.Register"
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &resp, nil
}

// Login выполняет вход по email и паролю.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	const op = "api.Login"
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &resp, nil
}

// Me возвращает пользователя, которому принадлежит token.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	const op = "api.Me"
	var resp userResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &resp.User, nil
}

// UpdateProfile меняет имя и email пользователя.
func (c *Client) UpdateProfile(ctx context.Context, token, name, email string) (*User, error) {
	const op = "api.UpdateProfile"
	var resp userResponse
	if err := c.do(ctx, http.MethodPut, "/auth/profile", token, profileRequest{Name: name, Email: email}, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &resp.User, nil
}

// Logout сообщает серверу о завершении сессии.
func (c *Client) Logout(ctx context.Context, token string) error {
	const op = "api.Logout"
	if err := c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Dashboard возвращает данные главной страницы дашборда.
func (c *Client) Dashboard(ctx context.Context, token string) (*models.DashboardData, error) {
	const op = "api.Dashboard"
	var resp dashboardResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &resp.Data, nil
}

// Stats возвращает детальную статистику.
func (c *Client) Stats(ctx context.Context, token string) (*models.DetailedStats, error) {
	const op = "api.Stats"
	var resp statsResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &resp.Data, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var er errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil {
			apiErr.Message = er.Message
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

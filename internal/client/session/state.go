// Package session хранит состояние клиентской сессии: текущего пользователя,
// токен, признак загрузки и последнюю ошибку.
//
// Переходы состояния описываются чистой функцией Reduce, а Manager применяет
// действия атомарно и сохраняет токен в долговременное хранилище.
package session

import "github.com/magabrotheeeer/primetrade/internal/client/api"

// State состояние клиентской сессии.
type State struct {
	User    *api.User
	Token   string
	Loading bool
	Error   string
}

// Authenticated сообщает, есть ли у клиента действующая сессия.
func (s State) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Action действие, меняющее состояние сессии.
type Action interface {
	isAction()
}

// SetLoading меняет только признак загрузки.
type SetLoading struct {
	Loading bool
}

// LoginSuccess устанавливает пользователя и токен.
type LoginSuccess struct {
	User  *api.User
	Token string
}

// Logout очищает сессию.
type Logout struct{}

// SetError записывает сообщение об ошибке.
type SetError struct {
	Message string
}

// ClearError сбрасывает сообщение об ошибке.
type ClearError struct{}

// UpdateUser заменяет данные пользователя, токен не меняется.
type UpdateUser struct {
	User *api.User
}

func (SetLoading) isAction()   {}
func (LoginSuccess) isAction() {}
func (Logout) isAction()       {}
func (SetError) isAction()     {}
func (ClearError) isAction()   {}
func (UpdateUser) isAction()   {}

// Reduce возвращает состояние после применения действия a к s.
// Неизвестные действия оставляют состояние без изменений.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetLoading:
		s.Loading = a.Loading
	case LoginSuccess:
		s.User = a.User
		s.Token = a.Token
		s.Loading = false
		s.Error = ""
	case Logout:
		s = State{}
	case SetError:
		s.Error = a.Message
		s.Loading = false
	case ClearError:
		s.Error = ""
	case UpdateUser:
		s.User = a.User
	}
	return s
}

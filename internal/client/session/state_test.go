package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/primetrade/internal/client/api"
)

func TestReduce(t *testing.T) {
	alice := &api.User{ID: "uid-1", Username: "alice"}
	renamed := &api.User{ID: "uid-1", Username: "alice", Name: "Alice Doe"}
	loggedIn := State{User: alice, Token: "T"}

	tests := []struct {
		name   string
		state  State
		action Action
		want   State
	}{
		{
			name:   "set loading touches only loading",
			state:  State{Error: "boom"},
			action: SetLoading{Loading: true},
			want:   State{Error: "boom", Loading: true},
		},
		{
			name:   "login success clears loading and error",
			state:  State{Loading: true, Error: "old"},
			action: LoginSuccess{User: alice, Token: "T"},
			want:   State{User: alice, Token: "T"},
		},
		{
			name:   "logout clears everything",
			state:  State{User: alice, Token: "T", Loading: true, Error: "x"},
			action: Logout{},
			want:   State{},
		},
		{
			name:   "set error clears loading",
			state:  State{Loading: true},
			action: SetError{Message: "Login failed"},
			want:   State{Error: "Login failed"},
		},
		{
			name:   "clear error keeps session",
			state:  State{User: alice, Token: "T", Error: "x"},
			action: ClearError{},
			want:   loggedIn,
		},
		{
			name:   "update user keeps token",
			state:  loggedIn,
			action: UpdateUser{User: renamed},
			want:   State{User: renamed, Token: "T"},
		},
		{
			name:   "nil action is ignored",
			state:  loggedIn,
			action: nil,
			want:   loggedIn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.state, tt.action))
		})
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	in := State{Token: "T", Error: "x"}
	_ = Reduce(in, Logout{})
	assert.Equal(t, "T", in.Token)
	assert.Equal(t, "x", in.Error)
}

func TestState_Authenticated(t *testing.T) {
	assert.False(t, State{}.Authenticated())
	assert.False(t, State{Token: "T"}.Authenticated())
	assert.True(t, State{Token: "T", User: &api.User{}}.Authenticated())
}

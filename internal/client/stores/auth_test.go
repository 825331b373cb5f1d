package stores

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	has      bool
	hasErr   error
	clearErr error
	cleared  int
}

func (f *fakeTokens) HasToken(context.Context) (bool, error) { return f.has, f.hasErr }
func (f *fakeTokens) ClearToken(context.Context) error {
	f.cleared++
	return f.clearErr
}

func TestNewAuthStore(t *testing.T) {
	s, err := NewAuthStore(context.Background(), &fakeTokens{has: true})
	require.NoError(t, err)
	assert.Equal(t, AuthState{IsAuthenticated: true}, s.State())

	s, err = NewAuthStore(context.Background(), &fakeTokens{})
	require.NoError(t, err)
	assert.Equal(t, AuthState{}, s.State())

	_, err = NewAuthStore(context.Background(), &fakeTokens{hasErr: errors.New("locked")})
	require.Error(t, err)
}

func TestAuthStore_SetAndClear(t *testing.T) {
	tokens := &fakeTokens{has: true}
	s, err := NewAuthStore(context.Background(), tokens)
	require.NoError(t, err)

	u := models.User{ID: "1", Name: "Alice", Email: "alice@example.com", Role: "admin"}
	st := s.SetAuth(u)
	require.NotNil(t, st.User)
	assert.Equal(t, u, *st.User)
	assert.True(t, st.IsAuthenticated)

	// снимок не связан с внутренним состоянием
	st.User.Name = "mutated"
	assert.Equal(t, "Alice", s.State().User.Name)

	st, err = s.ClearAuth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AuthState{}, st)
	assert.Equal(t, 1, tokens.cleared)
}

func TestAuthStore_ClearAuthTokenError(t *testing.T) {
	s, err := NewAuthStore(context.Background(), &fakeTokens{has: true, clearErr: errors.New("readonly")})
	require.NoError(t, err)
	s.SetAuth(models.User{ID: "1"})

	st, err := s.ClearAuth(context.Background())
	require.Error(t, err)
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, s.State().User)
}

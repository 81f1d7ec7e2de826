package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveGatesProtectedViews(t *testing.T) {
	for _, view := range []View{ViewDashboard, ViewDiet, ViewExpert} {
		require.Equal(t, ViewLogin, Resolve(StateUnauthenticated, view), "view %s", view)
		require.Equal(t, view, Resolve(StateAuthenticated, view), "view %s", view)
	}
	for _, view := range []View{ViewLanding, ViewLogin, ViewRegister} {
		require.Equal(t, view, Resolve(StateUnauthenticated, view), "view %s", view)
	}
}

func TestSessionLoginAndLogoutTransitions(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	session, err := NewSession(store)
	require.NoError(t, err)
	require.Equal(t, StateUnauthenticated, session.State())

	require.NoError(t, session.LoginSucceeded("tok-123"))
	require.Equal(t, StateAuthenticated, session.State())
	require.Equal(t, "tok-123", session.Token())

	// A fresh session restores from the persisted token.
	restored, err := NewSession(store)
	require.NoError(t, err)
	require.Equal(t, StateAuthenticated, restored.State())
	require.Equal(t, "tok-123", restored.Token())

	require.NoError(t, restored.Logout())
	require.Equal(t, StateUnauthenticated, restored.State())
	require.Empty(t, restored.Token())

	cleared, err := NewSession(store)
	require.NoError(t, err)
	require.Equal(t, StateUnauthenticated, cleared.State())
}

func TestSessionRejectsEmptyToken(t *testing.T) {
	session, err := NewSession(nil)
	require.NoError(t, err)
	require.ErrorIs(t, session.LoginSucceeded(""), ErrEmptyToken)
	require.Equal(t, StateUnauthenticated, session.State())
}

func TestSessionNavigate(t *testing.T) {
	session, err := NewSession(nil)
	require.NoError(t, err)

	require.Equal(t, ViewLogin, session.Navigate(ViewDashboard))

	require.NoError(t, session.LoginSucceeded("tok"))
	require.Equal(t, ViewDashboard, session.Navigate(ViewDashboard))
}

func TestFileTokenStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "nope", "token"))
	token, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, token)

	// Clearing an absent token is not an error.
	require.NoError(t, store.Clear())
}

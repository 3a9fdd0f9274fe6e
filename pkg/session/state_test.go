package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstate/pkg/session"
)

func TestState(t *testing.T) {
	var state session.State = newSession(t, newFakeBackend())

	t.Run("get creates group lazily and returns same instance", func(t *testing.T) {
		group := state.Get("cart")
		require.NotNil(t, group)
		assert.Equal(t, 0, group.Count())

		group.Set("item", "book")
		assert.Same(t, group, state.Get("cart"))
		assert.Equal(t, 1, state.Get("cart").Count())
	})

	t.Run("set replaces group", func(t *testing.T) {
		old := state.Get("prefs")
		old.Set("theme", "dark")

		state.Set("prefs", map[string]any{"lang": "en"})
		replaced := state.Get("prefs")

		assert.NotSame(t, old, replaced)
		assert.Equal(t, map[string]any{"lang": "en"}, replaced.Data())
		_, ok := replaced.Get("theme")
		assert.False(t, ok, "set does not merge")
	})

	t.Run("clear drops all groups", func(t *testing.T) {
		cart := state.Get("cart")
		state.Clear()

		assert.Equal(t, 0, cart.Count())
		assert.NotSame(t, cart, state.Get("cart"))
	})

	t.Run("csrf token is created once", func(t *testing.T) {
		tok := state.CSRFToken()
		require.NotNil(t, tok)

		value := tok.Value()
		assert.NotEmpty(t, value)
		assert.Same(t, tok, state.CSRFToken())
		assert.Equal(t, value, state.CSRFToken().Value())
	})

	t.Run("state alone does not start", func(t *testing.T) {
		assert.False(t, state.HasStarted())
	})
}

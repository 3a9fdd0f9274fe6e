package session

import (
	"github.com/dmitrymomot/sessionstate/pkg/params"
	"github.com/dmitrymomot/sessionstate/pkg/token"
)

// State is the data side of a session: parameter groups, the CSRF token and
// whether the session is currently started.
type State interface {
	HasStarted() bool

	// Get returns the named group, creating an empty one on first use.
	// Repeated calls return the same instance until Set or Clear.
	Get(name string) *params.Params

	// Set replaces the named group with values.
	Set(name string, values map[string]any)

	// Clear drops every group.
	Clear()

	// CSRFToken returns the session CSRF token, creating it on first use.
	CSRFToken() *token.Token
}

// base implements State. The started flag and the token are lifecycle state:
// only the owning binding may change them.
type base struct {
	groups    map[string]*params.Params
	csrfToken *token.Token
	started   bool
}

func (b *base) HasStarted() bool {
	return b.started
}

func (b *base) setStarted(started bool) {
	b.started = started
}

func (b *base) Get(name string) *params.Params {
	if b.groups == nil {
		b.groups = make(map[string]*params.Params)
	}
	group, ok := b.groups[name]
	if !ok {
		group = new(params.Params)
		b.groups[name] = group
	}
	return group
}

func (b *base) Set(name string, values map[string]any) {
	if b.groups == nil {
		b.groups = make(map[string]*params.Params)
	}
	b.groups[name] = params.New(values)
}

func (b *base) Clear() {
	for _, group := range b.groups {
		group.ClearData()
	}
	b.groups = nil
}

func (b *base) CSRFToken() *token.Token {
	if b.csrfToken == nil {
		b.csrfToken = token.New("")
	}
	return b.csrfToken
}

// setCSRFToken replaces the token; an empty value is generated lazily.
func (b *base) setCSRFToken(value string) {
	b.csrfToken = token.New(value)
}

func (b *base) resetCSRFToken() {
	b.csrfToken = nil
}

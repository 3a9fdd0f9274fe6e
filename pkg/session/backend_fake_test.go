package session_test

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrymomot/sessionstate/pkg/session"
)

// fakeBackend is an in-memory Backend with hooks for failure injection.
type fakeBackend struct {
	disabled    bool
	active      bool
	defaultName string
	name        string
	id          string
	buffer      map[string]any
	persisted   map[string]map[string]any
	opened      session.Options

	nextIDs []string
	counter int

	openErr    error
	regenErr   error
	closeErr   error
	destroyErr error

	regenerated int
	aborts      int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		defaultName: "sid",
		persisted:   make(map[string]map[string]any),
	}
}

func (f *fakeBackend) newID() string {
	if len(f.nextIDs) > 0 {
		id := f.nextIDs[0]
		f.nextIDs = f.nextIDs[1:]
		return id
	}
	f.counter++
	return fmt.Sprintf("generated-%d", f.counter)
}

func (f *fakeBackend) Disabled() bool { return f.disabled }
func (f *fakeBackend) Active() bool   { return f.active }

func (f *fakeBackend) Name() string {
	if f.active {
		return f.name
	}
	return f.defaultName
}

func (f *fakeBackend) Open(_ context.Context, name, id string, opts session.Options) (string, error) {
	if f.openErr != nil {
		return "", f.openErr
	}
	if name == "" {
		name = f.defaultName
	}
	if id == "" {
		id = f.newID()
	}
	f.active = true
	f.name = name
	f.id = id
	f.opened = opts
	f.buffer = maps.Clone(f.persisted[id])
	if f.buffer == nil {
		f.buffer = make(map[string]any)
	}
	return id, nil
}

func (f *fakeBackend) Keys() []string {
	keys := slices.Collect(maps.Keys(f.buffer))
	slices.Sort(keys)
	return keys
}

func (f *fakeBackend) Value(key string) (any, bool) {
	v, ok := f.buffer[key]
	return v, ok
}

func (f *fakeBackend) Put(key string, value any) { f.buffer[key] = value }
func (f *fakeBackend) Remove(key string)         { delete(f.buffer, key) }

func (f *fakeBackend) RegenerateID(context.Context) (string, error) {
	if f.regenErr != nil {
		return "", f.regenErr
	}
	delete(f.persisted, f.id)
	f.id = f.newID()
	f.regenerated++
	return f.id, nil
}

func (f *fakeBackend) Close(context.Context) error {
	if f.closeErr != nil {
		return f.closeErr
	}
	f.persisted[f.id] = maps.Clone(f.buffer)
	f.active = false
	f.buffer = nil
	return nil
}

func (f *fakeBackend) Abort(context.Context) error {
	f.aborts++
	f.active = false
	f.buffer = nil
	return nil
}

func (f *fakeBackend) Destroy(context.Context) error {
	if f.destroyErr != nil {
		return f.destroyErr
	}
	delete(f.persisted, f.id)
	f.active = false
	f.buffer = nil
	return nil
}

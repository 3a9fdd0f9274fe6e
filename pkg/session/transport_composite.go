package session

import (
	"errors"
	"net/http"
	"time"
)

// CompositeTransport reads from the first transport that yields an
// identifier and writes to all of them.
type CompositeTransport struct {
	transports []Transport
}

// NewCompositeTransport keeps the given order for reads. Nil transports are
// skipped.
func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	t := &CompositeTransport{}
	for _, tr := range transports {
		if tr != nil {
			t.transports = append(t.transports, tr)
		}
	}
	return t
}

func (t *CompositeTransport) GetID(r *http.Request) (string, error) {
	for _, tr := range t.transports {
		if id, err := tr.GetID(r); err == nil && id != "" {
			return id, nil
		}
	}
	return "", ErrSessionNotFound
}

// SetID writes through every transport and joins their failures.
func (t *CompositeTransport) SetID(w http.ResponseWriter, id string, ttl time.Duration) error {
	return t.each(func(tr Transport) error { return tr.SetID(w, id, ttl) })
}

// ClearID clears every transport and joins their failures.
func (t *CompositeTransport) ClearID(w http.ResponseWriter) error {
	return t.each(func(tr Transport) error { return tr.ClearID(w) })
}

func (t *CompositeTransport) each(fn func(Transport) error) error {
	errs := make([]error, 0, len(t.transports))
	for _, tr := range t.transports {
		errs = append(errs, fn(tr))
	}
	return errors.Join(errs...)
}

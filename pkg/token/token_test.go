package token_test

import (
	"encoding/base64"
	"testing"

	"github.com/dmitrymomot/sessionstate/pkg/token"
)

func TestToken_LazyGeneration(t *testing.T) {
	t.Parallel()

	tok := token.New("")
	first := tok.Value()
	if first == "" {
		t.Fatal("expected generated value")
	}
	if second := tok.Value(); second != first {
		t.Errorf("value changed between calls: %q != %q", first, second)
	}

	raw, err := base64.RawURLEncoding.DecodeString(first)
	if err != nil {
		t.Fatalf("value is not base64url: %v", err)
	}
	if len(raw) != token.Size {
		t.Errorf("decoded length = %d, want %d", len(raw), token.Size)
	}
}

func TestToken_ExplicitValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "regular value", value: "stored-token"},
		{name: "short value", value: "x"},
		{name: "value with spaces", value: "not validated at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tok := token.New(tt.value)
			if got := tok.Value(); got != tt.value {
				t.Errorf("Value() = %q, want %q", got, tt.value)
			}
			if got := tok.String(); got != tt.value {
				t.Errorf("String() = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestGenerate_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		v := token.Generate()
		if _, dup := seen[v]; dup {
			t.Fatalf("duplicate token %q", v)
		}
		seen[v] = struct{}{}
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "same", a: "abc", b: "abc", want: true},
		{name: "different", a: "abc", b: "abd", want: false},
		{name: "different length", a: "abc", b: "abcd", want: false},
		{name: "both empty", a: "", b: "", want: false},
		{name: "one empty", a: "abc", b: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := token.Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

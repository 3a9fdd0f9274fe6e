package session

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Backend option keys.
const (
	OptionName           = "name"
	OptionUseCookies     = "use_cookies"
	OptionUseOnlyCookies = "use_only_cookies"
	OptionUseTransSID    = "use_trans_sid"
	OptionMaxLifetime    = "gc_maxlifetime"
	OptionStrictMode     = "use_strict_mode"
	OptionSIDLength      = "sid_length"
)

// Options is a set of backend configuration directives.
type Options map[string]any

// Clone returns a shallow copy of o.
func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}
	return maps.Clone(o)
}

// Bool reads key as a boolean. Missing or nil values yield def.
func (o Options) Bool(key string, def bool) (bool, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	b, err := toBool(v)
	if err != nil {
		return false, fmt.Errorf("option %q: %w", key, err)
	}
	return b, nil
}

// Int reads key as an integer. Missing or nil values yield def.
func (o Options) Int(key string, def int64) (int64, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("option %q: %w", key, err)
	}
	return n, nil
}

// ParseOptions decodes a YAML mapping of backend directives.
func ParseOptions(data []byte) (Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, errors.Join(ErrInvalidConfiguration, err)
	}
	if opts == nil {
		opts = Options{}
	}
	return opts, nil
}

// LoadOptionsFile reads backend directives from a YAML file.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfiguration, err)
	}
	return ParseOptions(data)
}

// sanitizeOptions validates the transport directives and fills their defaults.
// The session identifier is carried by a Transport owned by the caller, so
// the backend must neither emit cookies nor accept identifiers from URLs.
// The name directive is dropped: the name is configured separately.
func sanitizeOptions(in Options) (Options, error) {
	opts := in.Clone()
	delete(opts, OptionName)

	useCookies, err := opts.Bool(OptionUseCookies, false)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfiguration, err)
	}
	if useCookies {
		return nil, errors.Join(ErrInvalidConfiguration, fmt.Errorf("option %q must be false", OptionUseCookies))
	}
	opts[OptionUseCookies] = false

	useOnlyCookies, err := opts.Bool(OptionUseOnlyCookies, true)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfiguration, err)
	}
	if !useOnlyCookies {
		return nil, errors.Join(ErrInvalidConfiguration, fmt.Errorf("option %q must be true", OptionUseOnlyCookies))
	}
	opts[OptionUseOnlyCookies] = true

	useTransSID, err := opts.Bool(OptionUseTransSID, false)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfiguration, err)
	}
	if useTransSID {
		return nil, errors.Join(ErrInvalidConfiguration, fmt.Errorf("option %q must be false", OptionUseTransSID))
	}
	opts[OptionUseTransSID] = false

	return opts, nil
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "true", "on", "yes":
			return true, nil
		case "", "0", "false", "off", "no":
			return false, nil
		}
		return false, fmt.Errorf("cannot use %q as boolean", b)
	}
	if n, err := toInt(v); err == nil {
		return n != 0, nil
	}
	return false, fmt.Errorf("cannot use %T as boolean", v)
}

func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", n)
		}
		return int64(n), nil
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot use %q as integer", n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("cannot use %T as integer", v)
}

func floatToInt(f float64) (int64, error) {
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	return int64(f), nil
}

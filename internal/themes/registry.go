package themes

import (
	"sort"
	"strings"
	"sync"

	"github.com/preston-bernstein/pyramid-service/internal/domain"
)

// Registry is a read-only set of themes keyed by normalized key.
type Registry struct {
	byKey map[string]Theme
	keys  []string
}

// NewRegistry validates the themes and freezes them into a registry.
func NewRegistry(items ...Theme) (*Registry, error) {
	r := &Registry{byKey: make(map[string]Theme, len(items))}
	for _, t := range items {
		if err := t.Validate(); err != nil {
			return nil, &domain.Error{
				Op:   "themes.register",
				Kind: domain.KindInvalidInput,
				Msg:  "invalid theme " + quoteKey(t.Key),
				Err:  err,
			}
		}
		key := NormalizeKey(t.Key)
		if _, dup := r.byKey[key]; dup {
			return nil, domain.Errorf("themes.register", domain.KindInvalidInput, "duplicate theme key %q", key)
		}
		c := t.clone()
		c.Key = key
		r.byKey[key] = c
		r.keys = append(r.keys, key)
	}
	sort.Strings(r.keys)
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of builtin themes.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(builtin()...)
		if err != nil {
			panic("themes: invalid builtin theme: " + err.Error())
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Get returns the theme for key, or a not-found error listing the valid keys.
func (r *Registry) Get(key string) (Theme, error) {
	if r != nil {
		if t, ok := r.byKey[NormalizeKey(key)]; ok {
			return t.clone(), nil
		}
	}
	return Theme{}, domain.Errorf("themes.get", domain.KindNotFound,
		"unknown theme %q. Available themes: %s", key, strings.Join(r.Keys(), ", "))
}

// Has reports whether key resolves to a theme.
func (r *Registry) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r.byKey[NormalizeKey(key)]
	return ok
}

// List returns every theme sorted by key.
func (r *Registry) List() []Theme {
	if r == nil {
		return nil
	}
	out := make([]Theme, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.byKey[k].clone())
	}
	return out
}

// Keys returns the sorted theme keys.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	return cloneStrings(r.keys)
}

func quoteKey(k string) string {
	if k == "" {
		return "(missing key)"
	}
	return `"` + k + `"`
}

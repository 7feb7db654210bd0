package config

import (
	"os"

	"go.uber.org/zap"
)

// EnvFunc looks up a variable in the process environment. It follows the
// os.LookupEnv contract: a variable set to "" is present.
type EnvFunc func(name string) (string, bool)

// Option configures New.
type Option func(*Resolver)

// WithLogger routes ingestion diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithEnv replaces the environment accessor, primarily for tests.
func WithEnv(lookup EnvFunc) Option {
	return func(r *Resolver) {
		if lookup != nil {
			r.lookupEnv = lookup
		}
	}
}

// Resolver answers precedence-aware lookups over arguments, .env files and the
// live process environment. It is immutable once New returns and safe for
// concurrent use.
type Resolver struct {
	store     *store
	paths     []string
	lookupEnv EnvFunc
	logger    *zap.Logger
}

// New ingests args (without the program name) and then each file in paths, in
// order. An empty paths slice selects DefaultPaths.
func New(args []string, paths []string, opts ...Option) *Resolver {
	r := &Resolver{
		store:     newStore(),
		lookupEnv: os.LookupEnv,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if len(paths) == 0 {
		paths = DefaultPaths()
	}
	r.paths = append([]string(nil), paths...)

	ingestArgs(r.store, args, r.logger)
	for _, path := range r.paths {
		ingestFile(r.store, path, r.logger)
	}

	r.logger.Debug("configuration resolver ready",
		zap.Int("keys", r.store.len()),
		zap.Strings("paths", r.paths),
	)
	return r
}

// Has reports whether key is known to src. SourceAny checks the stored
// arguments and files first and then the live environment.
func (r *Resolver) Has(key string, src Source) bool {
	switch src {
	case SourceAny:
		if r.store.contains(key) {
			return true
		}
		_, ok := r.lookupEnv(key)
		return ok
	case SourceEnv:
		_, ok := r.lookupEnv(key)
		return ok
	default:
		_, ok := r.store.first(key, src)
		return ok
	}
}

// Get returns the value for key from src, or def when src has none.
// SourceAny resolves in the order arguments, files, environment.
func (r *Resolver) Get(key, def string, src Source) string {
	if entry, ok := r.lookup(key, src); ok {
		return entry.Value
	}
	return def
}

// Value is shorthand for Get(key, "", SourceAny).
func (r *Resolver) Value(key string) string {
	return r.Get(key, "", SourceAny)
}

// Lookup returns the winning entry for key under SourceAny precedence.
func (r *Resolver) Lookup(key string) (Entry, bool) {
	return r.lookup(key, SourceAny)
}

// Entries returns every stored entry for key in ingestion order. Environment
// values are never stored and so never appear here.
func (r *Resolver) Entries(key string) []Entry {
	return r.store.list(key)
}

// Keys returns the stored keys in lexical order.
func (r *Resolver) Keys() []string {
	return r.store.keys()
}

// Paths returns the file paths the resolver was built from, in ingestion order.
func (r *Resolver) Paths() []string {
	return append([]string(nil), r.paths...)
}

func (r *Resolver) lookup(key string, src Source) (Entry, bool) {
	switch src {
	case SourceAny:
		if entry, ok := r.store.first(key, SourceCLI); ok {
			return entry, true
		}
		if entry, ok := r.store.first(key, SourceFile); ok {
			return entry, true
		}
		return r.fromEnv(key)
	case SourceEnv:
		return r.fromEnv(key)
	default:
		return r.store.first(key, src)
	}
}

func (r *Resolver) fromEnv(key string) (Entry, bool) {
	value, ok := r.lookupEnv(key)
	if !ok {
		return Entry{}, false
	}
	return Entry{Value: unquote(value), Source: SourceEnv}, true
}

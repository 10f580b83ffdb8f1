package at

// ProgramCache stores compiled index-expression programs keyed by expression
// strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache registers a program cache on the Accessor.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *accessorConfig) {
		cfg.programCache = cache
	}
}

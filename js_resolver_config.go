package at

type jsResolverConfig struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// JSResolverOption configures the JS resolver.
type JSResolverOption func(*jsResolverConfig)

// JSWithProgramCache applies a ProgramCache to the JS resolver.
func JSWithProgramCache(cache ProgramCache) JSResolverOption {
	return func(cfg *jsResolverConfig) {
		cfg.cache = cache
	}
}

// JSWithFunctionRegistry applies a FunctionRegistry to the JS resolver.
func JSWithFunctionRegistry(registry *FunctionRegistry) JSResolverOption {
	return func(cfg *jsResolverConfig) {
		if registry == nil {
			return
		}
		cfg.registry = registry.Clone()
	}
}

func applyJSResolverOptions(opts []JSResolverOption) jsResolverConfig {
	cfg := jsResolverConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

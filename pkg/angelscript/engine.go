package angelscript

import (
	"github.com/angelscript-go/asc/internal/ffi"
	"github.com/angelscript-go/asc/internal/registry"
)

// Engine is the long-lived side of the façade: a host application creates
// one, registers its native types/functions/properties through the
// embedded *ffi.Registrar, then compiles any number of scripts against the
// same populated registry.
type Engine struct {
	*ffi.Registrar
	strict bool
}

// EngineOption configures a new Engine.
type EngineOption func(*Engine)

// WithStrictEngine makes every Compile call through this Engine behave
// like CompileStrict.
func WithStrictEngine(strict bool) EngineOption {
	return func(e *Engine) { e.strict = strict }
}

// NewEngine creates an Engine over a fresh type registry.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{Registrar: ffi.NewRegistrar(registry.New())}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compile compiles source against this Engine's registry, in lenient or
// strict mode depending on how the Engine was constructed.
func (e *Engine) Compile(source string, opts ...Option) (*Result, error) {
	opts = append(opts, WithRegistrar(e.Registrar))
	if e.strict {
		return CompileStrict(source, opts...)
	}
	return Compile(source, opts...)
}

// Package angelscript is the public façade tying the front-end
// compilation pipeline together: lex, parse, declare/resolve, check, and
// emit bytecode from one source string, against either a fresh type
// registry or one an Engine has already populated with native (FFI)
// registrations.
//
// No stage below this package ever panics on malformed script input —
// every fallible step returns diagnostics on a *diag.Sink and continues so
// one Compile call surfaces a batch of independent problems. The one
// exception is an internal invariant violation (a bug, not a user error);
// Compile recovers that at this boundary and reports it as a single
// "internal-error" diagnostic instead of crashing the host application.
package angelscript

import (
	"fmt"

	"github.com/angelscript-go/asc/internal/ast"
	"github.com/angelscript-go/asc/internal/bytecode"
	"github.com/angelscript-go/asc/internal/diag"
	"github.com/angelscript-go/asc/internal/ffi"
	"github.com/angelscript-go/asc/internal/parser"
	"github.com/angelscript-go/asc/internal/registry"
	"github.com/angelscript-go/asc/internal/semantic"
)

// Result is everything one Compile call produced: the parsed module, the
// registry it was checked against, the ExprInfo side table, the emitted
// bytecode, and every diagnostic collected across all stages (parse
// through emit share one Sink, so a syntax error and a downstream type
// error can both be reported from a single call).
type Result struct {
	Module      *ast.Module
	Registry    *registry.TypeRegistry
	Exprs       map[ast.ExprID]semantic.ExprInfo
	Bytecode    *bytecode.Module
	Diagnostics *diag.Sink
}

// Option configures a Compile/CompileStrict call, following the same
// functional-options shape internal/parser.Option already uses for
// Parser construction.
type Option func(*options)

type options struct {
	path      string
	registrar *ffi.Registrar
}

// WithPath sets the filename Compile's diagnostics are rendered against
// (purely cosmetic — "<input>" is used when omitted).
func WithPath(path string) Option {
	return func(o *options) { o.path = path }
}

// WithRegistrar seeds Compile's type registry with r's native
// registrations (classes, functions, properties, interfaces, enums, and
// funcdefs an embedding host registered beforehand) instead of starting
// from a bare registry.New(). Mutually exclusive with compiling against
// an Engine, which already carries its own Registrar.
func WithRegistrar(r *ffi.Registrar) Option {
	return func(o *options) { o.registrar = r }
}

// Compile runs the full pipeline with the parser's strict flag off. The
// parser reads no strict flag, so Compile and CompileStrict accept and
// reject the same source (a bare assignment used as a condition is
// accepted by both).
func Compile(source string, opts ...Option) (result *Result, err error) {
	return compile(source, false, opts)
}

// CompileStrict runs the full pipeline with parser.WithStrictMode enabled.
func CompileStrict(source string, opts ...Option) (result *Result, err error) {
	return compile(source, true, opts)
}

func compile(source string, strict bool, opts []Option) (result *Result, err error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	sink := diag.NewSink()
	defer func() {
		if rec := recover(); rec != nil {
			sink.Errorf(diag.KindInternal, diag.Span{}, "internal error: %v", rec)
			result = &Result{Diagnostics: sink}
			err = fmt.Errorf("angelscript: internal error: %v", rec)
		}
	}()

	var parserOpts []parser.Option
	if strict {
		parserOpts = append(parserOpts, parser.WithStrictMode(true))
	}
	p := parser.New(source, sink, parserOpts...)
	mod := p.Parse(o.path)

	var reg *registry.TypeRegistry
	if o.registrar != nil {
		reg = o.registrar.Registry()
	}

	a := semantic.NewAnalyzerWithRegistry(reg)
	sres, checkSink := a.Analyze([]*ast.Module{mod})
	sink.Merge(checkSink)

	result = &Result{
		Module:      mod,
		Registry:    sres.Registry,
		Exprs:       sres.Exprs,
		Diagnostics: sink,
	}

	if sink.HasErrors() {
		return result, fmt.Errorf("angelscript: compilation failed with %d error(s)", countErrors(sink))
	}

	result.Bytecode = bytecode.CompileModule(sres.Registry, mod.Arenas, mod, sres.Exprs, sink)
	if sink.HasErrors() {
		return result, fmt.Errorf("angelscript: compilation failed with %d error(s)", countErrors(sink))
	}
	return result, nil
}

func countErrors(sink *diag.Sink) int {
	n := 0
	for _, d := range sink.All() {
		if d.Severity == diag.SeverityError {
			n++
		}
	}
	return n
}

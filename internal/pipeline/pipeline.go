package pipeline

import (
	"github.com/funvibe/sindarin/internal/analyzer"
	"github.com/funvibe/sindarin/internal/ast"
	"github.com/funvibe/sindarin/internal/diagnostics"
	"github.com/funvibe/sindarin/internal/modules"
	"github.com/funvibe/sindarin/internal/symbols"
)

// Context carries one compilation unit through the processing stages.
type Context struct {
	Program     *ast.Program
	Registry    *modules.Registry
	Diagnostics *diagnostics.Bag

	// Table is the entry module's symbol table after analysis; downstream
	// stages (code generation) read the decorated tree through it.
	Table *symbols.SymbolTable
}

// NewContext creates a pipeline context for a parsed entry module. The
// registry may already hold the importable modules.
func NewContext(program *ast.Program, registry *modules.Registry, diags *diagnostics.Bag) *Context {
	return &Context{
		Program:     program,
		Registry:    registry,
		Diagnostics: diags,
	}
}

// Processor is a sequence stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages.
	}
	return ctx
}

// AnalysisProcessor runs semantic analysis: the hoisting pass and the body
// pass over the entry module, with imports resolved through the registry.
type AnalysisProcessor struct{}

func (ap *AnalysisProcessor) Process(ctx *Context) *Context {
	table := symbols.NewSymbolTable()
	analyzer.RegisterBuiltins(table)
	checker := analyzer.New(table, ctx.Diagnostics)
	if ctx.Registry != nil {
		checker.SetLoader(ctx.Registry)
	}
	checker.Check(ctx.Program)
	ctx.Table = table
	return ctx
}

// Analyze is the convenience entry point for callers that do not compose
// their own pipeline: it runs the analysis stage over program and reports
// whether the module is clean enough for code generation.
func Analyze(program *ast.Program, registry *modules.Registry, diags *diagnostics.Bag) (*Context, bool) {
	ctx := New(&AnalysisProcessor{}).Run(NewContext(program, registry, diags))
	return ctx, !diags.HadError()
}

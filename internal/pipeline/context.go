package pipeline

import (
	"github.com/funvibe/enumc/internal/ast"
	"github.com/funvibe/enumc/internal/diagnostics"
	"github.com/funvibe/enumc/internal/generic"
	"github.com/funvibe/enumc/internal/ir"
	"github.com/funvibe/enumc/internal/typecheck"
)

// PipelineContext holds all the data passed between pipeline stages:
// lex -> parse -> collect -> infer -> check -> generic usage collection
// -> trait solving -> lowering. Each stage reads what the previous one
// produced and adds its own field; the only stage that writes into the
// source AST is collection, which stores resolved types into function
// signatures and impl receivers.
type PipelineContext struct {
	SourceCode string
	FilePath   string
	FileID     int

	TokenStream TokenStream
	AstRoot     *ast.Program

	// IDAlloc is the shared node-id allocator for this file's AST,
	// created once by the parser stage. No later stage mints ids:
	// lowering reuses the generic body's nodes for every instantiation.
	IDAlloc func() int

	TyCtx           *typecheck.Context
	GenericResolver *generic.Resolver
	IR              *ir.Program

	Errors []*diagnostics.DiagnosticError
}

// NewPipelineContext creates and initializes a new PipelineContext.
func NewPipelineContext(source, filePath string, fileID int) *PipelineContext {
	return &PipelineContext{
		SourceCode: source,
		FilePath:   filePath,
		FileID:     fileID,
		TyCtx:      typecheck.NewContext(),
		Errors:     []*diagnostics.DiagnosticError{},
	}
}

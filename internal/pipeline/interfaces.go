package pipeline

import (
	"github.com/funvibe/enumc/internal/token"
)

// Processor is any component that can process a PipelineContext and
// return a (possibly mutated) context. Each compiler stage — lexing,
// parsing, collection, inference, check, generic resolution, trait
// solving, lowering — is one Processor.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// TokenStream defines the contract for a buffered token stream the
// parser consumes.
type TokenStream interface {
	// Next consumes and returns the next token from the stream.
	Next() token.Token

	// Peek returns the next n tokens without consuming them. If the
	// stream has fewer than n tokens remaining, it returns all of them.
	Peek(n int) []token.Token
}

// Package diagnostics is the core's only external-facing product besides
// the typed IR (spec.md §6): every pass appends *DiagnosticError values to
// a shared list instead of returning early, so one run reports every
// problem it can find rather than stopping at the first.
//
// Grounded on the teacher's internal/diagnostics/diagnostics.go (Phase +
// ErrorCode + templated DiagnosticError), generalized from funxy's
// lexer/parser/analyzer/runtime phases to spec.md §6's four categories:
// resolution, duplication, type and generic errors, plus warnings.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/enumc/internal/token"
	"github.com/google/uuid"
)

// Phase names the category of problem spec.md §6 groups diagnostics into.
type Phase string

const (
	PhaseSyntax     Phase = "syntax"
	PhaseResolution Phase = "resolution"
	PhaseDuplicate  Phase = "duplication"
	PhaseType       Phase = "type"
	PhaseGeneric    Phase = "generic"
	PhaseWarning    Phase = "warning"
)

type ErrorCode string

const (
	// Syntax errors: the parser couldn't make sense of the token stream.
	ErrSyntax ErrorCode = "P001"

	// Resolution errors: a name doesn't refer to anything in scope.
	ErrUndeclaredVariable ErrorCode = "R001"
	ErrUndeclaredType     ErrorCode = "R002"
	ErrUndeclaredFunction ErrorCode = "R003"
	ErrUnknownField       ErrorCode = "R004"
	ErrUnknownVariant     ErrorCode = "R005"

	// Duplication errors: the same name declared twice in a scope that
	// forbids it.
	ErrDuplicateVariable ErrorCode = "D001"
	ErrDuplicateFunction ErrorCode = "D002"
	ErrDuplicateType     ErrorCode = "D003"
	ErrDuplicateImpl     ErrorCode = "D004"

	// Type errors: the Check pass's core business.
	ErrTypeMismatch       ErrorCode = "T001"
	ErrNoReturnOnPath     ErrorCode = "T002"
	ErrNotCallable        ErrorCode = "T003"
	ErrWrongArgCount      ErrorCode = "T004"
	ErrInvalidOperator    ErrorCode = "T005"
	ErrNotIndexable       ErrorCode = "T006"
	ErrNotDereferenceable ErrorCode = "T007"
	ErrInvalidMatchType   ErrorCode = "T008"
	ErrNonExhaustiveMatch ErrorCode = "T009"
	ErrConditionNotTruthy ErrorCode = "T010"

	// Generic errors: the Generic Resolver / Trait Solver's domain.
	ErrNoTraitImpl        ErrorCode = "G001"
	ErrGenericArgMismatch ErrorCode = "G002"
	ErrUnboundGeneric     ErrorCode = "G003"
	ErrAmbiguousImpl      ErrorCode = "G004"
	ErrTooManyInstances   ErrorCode = "G005"

	// Warnings: never poison the context.
	WarnUnusedVariable ErrorCode = "W001"
)

var errorTemplates = map[ErrorCode]string{
	ErrSyntax:             "%s",
	ErrUndeclaredVariable: "undeclared variable '%s'",
	ErrUndeclaredType:     "undeclared type '%s'",
	ErrUndeclaredFunction: "call to undeclared function '%s'",
	ErrUnknownField:       "type '%s' has no field '%s'",
	ErrUnknownVariant:     "enum '%s' has no variant '%s'",
	ErrDuplicateVariable:  "duplicate variable name '%s'",
	ErrDuplicateFunction:  "duplicate function name '%s'",
	ErrDuplicateType:      "duplicate type name '%s'",
	ErrDuplicateImpl:      "trait '%s' is already implemented for %s",
	ErrTypeMismatch:       "expected %s, got %s",
	ErrNoReturnOnPath:     "function '%s' has return type %s but no return on all paths",
	ErrNotCallable:        "'%s' is not callable",
	ErrWrongArgCount:      "function '%s' expects %d argument(s), got %d",
	ErrInvalidOperator:    "operator '%s' is not defined for %s and %s",
	ErrNotIndexable:       "cannot index into %s",
	ErrNotDereferenceable: "cannot dereference %s",
	ErrInvalidMatchType:   "pattern is not a valid match for %s",
	ErrNonExhaustiveMatch: "match is not exhaustive; missing variant(s): %s",
	ErrConditionNotTruthy: "condition has type %s, which is not a valid condition",
	ErrNoTraitImpl:        "no trait '%s' implemented for <%s>",
	ErrGenericArgMismatch: "expected %d generic argument(s), got %d",
	ErrUnboundGeneric:     "generic parameter '%s' is never bound to a concrete type",
	ErrAmbiguousImpl:      "call is ambiguous: more than one impl of '%s' matches <%s>",
	ErrTooManyInstances:   "'%s' was instantiated %d times, exceeding the configured limit of %d",
	WarnUnusedVariable:    "unused variable '%s'",
}

// DiagnosticError is the single message shape every pass emits. ID is a
// uuid assigned at construction purely for log/correlation purposes
// (grounded on the teacher's evaluator/builtins_uuid.go use of
// google/uuid) — it plays no role in type-checking and carries no
// semantic weight, keeping the core's output otherwise deterministic.
type DiagnosticError struct {
	ID      uuid.UUID
	Code    ErrorCode
	Phase   Phase
	Args    []interface{}
	Span    token.Span
	Warning bool
}

func (e *DiagnosticError) Error() string {
	template, ok := errorTemplates[e.Code]
	if !ok {
		return fmt.Sprintf("unknown error code: %s", e.Code)
	}
	message := fmt.Sprintf(template, e.Args...)
	kind := "error"
	if e.Warning {
		kind = "warning"
	}
	return fmt.Sprintf("%s at %d:%d [%s] %s: %s", kind, e.Span.Start, e.Span.End, e.Code, e.Phase, message)
}

func newDiagnostic(phase Phase, code ErrorCode, span token.Span, warning bool, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		ID:      uuid.New(),
		Code:    code,
		Phase:   phase,
		Args:    args,
		Span:    span,
		Warning: warning,
	}
}

func NewSyntaxError(span token.Span, args ...interface{}) *DiagnosticError {
	return newDiagnostic(PhaseSyntax, ErrSyntax, span, false, args...)
}

func NewResolutionError(code ErrorCode, span token.Span, args ...interface{}) *DiagnosticError {
	return newDiagnostic(PhaseResolution, code, span, false, args...)
}

func NewDuplicateError(code ErrorCode, span token.Span, args ...interface{}) *DiagnosticError {
	return newDiagnostic(PhaseDuplicate, code, span, false, args...)
}

func NewTypeError(code ErrorCode, span token.Span, args ...interface{}) *DiagnosticError {
	return newDiagnostic(PhaseType, code, span, false, args...)
}

func NewGenericError(code ErrorCode, span token.Span, args ...interface{}) *DiagnosticError {
	return newDiagnostic(PhaseGeneric, code, span, false, args...)
}

func NewWarning(code ErrorCode, span token.Span, args ...interface{}) *DiagnosticError {
	return newDiagnostic(PhaseWarning, code, span, true, args...)
}

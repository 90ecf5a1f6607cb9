package config

// Operators Configuration.
//
// Single source of truth for operator precedence/associativity, in the
// teacher's style (internal/config/operators.go): a flat table the parser
// consults by symbol rather than a chain of per-precedence-level parse
// functions. Narrowed to the fixed operator set spec.md's grammar defines
// — none of these are user-overridable via traits.

import "github.com/funvibe/enumc/internal/typesystem"

type Associativity int

const (
	AssocLeft Associativity = iota
	AssocRight
)

// Precedence levels, higher binds tighter.
const (
	PrecLogicOr    = 1 // ||
	PrecLogicAnd   = 2 // &&
	PrecBitwiseOr  = 3 // | ^
	PrecBitwiseAnd = 4 // &
	PrecEquality   = 5 // == != < > <= >=
	PrecShift      = 6 // << >>
	PrecAdditive   = 7 // + -
	PrecMultiply   = 8 // * / %
	PrecUnary      = 9 // ! - * & (prefix)
	PrecCall       = 10 // f(x) x[i] x.y
)

type OperatorInfo struct {
	Symbol     string
	Op         typesystem.Operator
	Precedence int
	Assoc      Associativity
}

// AllOperators is the single source of truth the parser's precedence
// table and the lexer's token set both trace back to.
var AllOperators = []OperatorInfo{
	{Symbol: "||", Op: typesystem.OpLogOr, Precedence: PrecLogicOr, Assoc: AssocLeft},
	{Symbol: "&&", Op: typesystem.OpLogAnd, Precedence: PrecLogicAnd, Assoc: AssocLeft},
	{Symbol: "|", Op: typesystem.OpBitOr, Precedence: PrecBitwiseOr, Assoc: AssocLeft},
	{Symbol: "^", Op: typesystem.OpBitXor, Precedence: PrecBitwiseOr, Assoc: AssocLeft},
	{Symbol: "&", Op: typesystem.OpBitAnd, Precedence: PrecBitwiseAnd, Assoc: AssocLeft},
	{Symbol: "==", Op: typesystem.OpEq, Precedence: PrecEquality, Assoc: AssocLeft},
	{Symbol: "!=", Op: typesystem.OpNeq, Precedence: PrecEquality, Assoc: AssocLeft},
	{Symbol: "<", Op: typesystem.OpLt, Precedence: PrecEquality, Assoc: AssocLeft},
	{Symbol: ">", Op: typesystem.OpGt, Precedence: PrecEquality, Assoc: AssocLeft},
	{Symbol: "<=", Op: typesystem.OpLte, Precedence: PrecEquality, Assoc: AssocLeft},
	{Symbol: ">=", Op: typesystem.OpGte, Precedence: PrecEquality, Assoc: AssocLeft},
	{Symbol: "<<", Op: typesystem.OpShl, Precedence: PrecShift, Assoc: AssocLeft},
	{Symbol: ">>", Op: typesystem.OpShr, Precedence: PrecShift, Assoc: AssocLeft},
	{Symbol: "+", Op: typesystem.OpAdd, Precedence: PrecAdditive, Assoc: AssocLeft},
	{Symbol: "-", Op: typesystem.OpSub, Precedence: PrecAdditive, Assoc: AssocLeft},
	{Symbol: "*", Op: typesystem.OpMul, Precedence: PrecMultiply, Assoc: AssocLeft},
	{Symbol: "/", Op: typesystem.OpDiv, Precedence: PrecMultiply, Assoc: AssocLeft},
	{Symbol: "%", Op: typesystem.OpMod, Precedence: PrecMultiply, Assoc: AssocLeft},
}

// GetOperator returns operator info by symbol, nil if the symbol isn't a
// registered binary operator.
func GetOperator(symbol string) *OperatorInfo {
	for i := range AllOperators {
		if AllOperators[i].Symbol == symbol {
			return &AllOperators[i]
		}
	}
	return nil
}

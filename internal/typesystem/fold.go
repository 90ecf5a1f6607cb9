package typesystem

import "fmt"

// Operator is the small set of binary operators FoldTy needs to know about;
// it mirrors the grammar's binary operator tokens, and the parser maps
// each such token onto this set when it builds an ast.BinaryExpr.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpLogAnd
	OpLogOr
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLte
	OpGte
)

func isComparison(op Operator) bool {
	switch op {
	case OpEq, OpNeq, OpLt, OpGt, OpLte, OpGte:
		return true
	}
	return false
}

func isLogical(op Operator) bool {
	return op == OpLogAnd || op == OpLogOr
}

func isBitwiseOrShift(op Operator) bool {
	switch op {
	case OpBitAnd, OpBitOr, OpBitXor, OpShl, OpShr:
		return true
	}
	return false
}

// FoldTy implements spec.md §4.2's binary-operator result table. It peels
// one Ref layer at a time (reading an lvalue produces a Ref(T) that arith
// still operates through), then matches the unwrapped operand pair.
func FoldTy(lhs, rhs Ty, op Operator) (Ty, error) {
	if r, ok := lhs.(Ref); ok {
		return FoldTy(r.Elem, rhs, op)
	}
	if r, ok := rhs.(Ref); ok {
		return FoldTy(lhs, r.Elem, op)
	}

	lp, lok := lhs.(Primitive)
	rp, rok := rhs.(Primitive)

	switch {
	case lok && rok && lp.Kind == Int && rp.Kind == Int:
		if isComparison(op) {
			return TyBool, nil
		}
		return TyInt, nil

	case lok && rok && lp.Kind == Float && rp.Kind == Float:
		if isComparison(op) {
			return TyBool, nil
		}
		return TyFloat, nil

	case lok && rok && lp.Kind == Int && rp.Kind == Float,
		lok && rok && lp.Kind == Float && rp.Kind == Int:
		if isBitwiseOrShift(op) {
			return nil, fmt.Errorf("operator not defined for int/float mix")
		}
		if isComparison(op) {
			return TyBool, nil
		}
		return TyFloat, nil

	case lok && rok && lp.Kind == Char && rp.Kind == Char:
		if isComparison(op) {
			return TyBool, nil
		}
		return nil, fmt.Errorf("char only supports comparison operators")

	case lok && rok && lp.Kind == Bool && rp.Kind == Bool:
		if isLogical(op) || isComparison(op) {
			return TyBool, nil
		}
		return nil, fmt.Errorf("bool only supports logical/comparison operators")
	}

	if lpt, ok := lhs.(Ptr); ok {
		if rp, ok := rhs.(Primitive); ok && rp.Kind == Int {
			return lpt, nil
		}
	}
	if rpt, ok := rhs.(Ptr); ok {
		if lp, ok := lhs.(Primitive); ok && lp.Kind == Int {
			return rpt, nil
		}
	}

	if la, ok := lhs.(Array); ok {
		if ra, ok := rhs.(Array); ok && la.Size == ra.Size {
			elem, err := FoldTy(la.Element, ra.Element, op)
			if err != nil {
				return nil, err
			}
			return Array{Size: la.Size, Element: elem}, nil
		}
	}

	return nil, fmt.Errorf("operator not defined for %s and %s", lhs.String(), rhs.String())
}

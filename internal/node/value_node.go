package node

import "github.com/VKoskiv/c-ray/internal/geom"

const defaultRoughness = 0

type valueKind uint8

const (
	valueConstant valueKind = iota
	valueAdd
	valueSub
	valueMul
	valueDiv
)

type valueDescriptor struct {
	kind     valueKind
	constant float64
	a, b     ValueID
}

func hashValueDescriptor(d valueDescriptor) uint64 {
	return fnv1a(uint64(d.kind), hashFloat(d.constant), uint64(d.a), uint64(d.b))
}

func equalValueDescriptor(x, y valueDescriptor) bool { return x == y }

// NewConstantValue interns a scalar leaf.
func (a *Arena) NewConstantValue(v float64) ValueID {
	return a.internValue(valueDescriptor{kind: valueConstant, constant: v})
}

func (a *Arena) newValueOp(kind valueKind, x, y ValueID) ValueID {
	return a.internValue(valueDescriptor{kind: kind, a: x, b: y})
}

func (a *Arena) NewValueAdd(x, y ValueID) ValueID { return a.newValueOp(valueAdd, x, y) }
func (a *Arena) NewValueSub(x, y ValueID) ValueID { return a.newValueOp(valueSub, x, y) }
func (a *Arena) NewValueMul(x, y ValueID) ValueID { return a.newValueOp(valueMul, x, y) }
func (a *Arena) NewValueDiv(x, y ValueID) ValueID { return a.newValueOp(valueDiv, x, y) }

// EvalValue evaluates a ValueNode at hit.
func (a *Arena) EvalValue(id ValueID, hit geom.Hit) float64 {
	d := a.value(id)
	switch d.kind {
	case valueConstant:
		return d.constant
	case valueAdd:
		return a.EvalValue(d.a, hit) + a.EvalValue(d.b, hit)
	case valueSub:
		return a.EvalValue(d.a, hit) - a.EvalValue(d.b, hit)
	case valueMul:
		return a.EvalValue(d.a, hit) * a.EvalValue(d.b, hit)
	case valueDiv:
		denom := a.EvalValue(d.b, hit)
		if denom == 0 {
			return 0
		}
		return a.EvalValue(d.a, hit) / denom
	}
	return 0
}

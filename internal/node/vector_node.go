package node

import (
	"github.com/VKoskiv/c-ray/internal/geom"
	"github.com/VKoskiv/c-ray/internal/vecmath"
)

type vectorKind uint8

const (
	vectorConstant vectorKind = iota
	vectorNormalIn
	vectorAdd
	vectorScale
)

type vectorDescriptor struct {
	kind     vectorKind
	constant vecmath.Vector3
	a, b     VectorID // vectorAdd
	vec      VectorID // vectorScale operand
	scale    ValueID  // vectorScale factor
}

func hashVectorDescriptor(d vectorDescriptor) uint64 {
	return fnv1a(
		uint64(d.kind),
		hashFloat(d.constant.X), hashFloat(d.constant.Y), hashFloat(d.constant.Z),
		uint64(d.a), uint64(d.b), uint64(d.vec), uint64(d.scale),
	)
}

func equalVectorDescriptor(x, y vectorDescriptor) bool { return x == y }

// NewConstantVector interns a literal vector leaf.
func (a *Arena) NewConstantVector(v vecmath.Vector3) VectorID {
	return a.internVector(vectorDescriptor{kind: vectorConstant, constant: v})
}

// NewNormalIn interns a node reading the current hit's shading normal.
func (a *Arena) NewNormalIn() VectorID {
	return a.internVector(vectorDescriptor{kind: vectorNormalIn})
}

// NewVectorAdd interns componentwise addition of two VectorNodes.
func (a *Arena) NewVectorAdd(x, y VectorID) VectorID {
	return a.internVector(vectorDescriptor{kind: vectorAdd, a: x, b: y})
}

// NewVectorScale interns a VectorNode scaled by a ValueNode.
func (a *Arena) NewVectorScale(v VectorID, s ValueID) VectorID {
	return a.internVector(vectorDescriptor{kind: vectorScale, vec: v, scale: s})
}

// EvalVector evaluates a VectorNode at hit, returning both the vector
// and the coordinate view of it (spec.md §3: "VectorNode: eval(hit) ->
// (Vec3, Coord)").
func (a *Arena) EvalVector(id VectorID, hit geom.Hit) (vecmath.Vector3, vecmath.Coord) {
	d := a.vector(id)
	var v vecmath.Vector3
	switch d.kind {
	case vectorConstant:
		v = d.constant
	case vectorNormalIn:
		v = hit.Normal
	case vectorAdd:
		av, _ := a.EvalVector(d.a, hit)
		bv, _ := a.EvalVector(d.b, hit)
		v = av.Add(bv)
	case vectorScale:
		base, _ := a.EvalVector(d.vec, hit)
		v = base.Scale(a.EvalValue(d.scale, hit))
	}
	return v, vecmath.Coord{U: v.X, V: v.Y}
}

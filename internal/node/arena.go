package node

import "github.com/VKoskiv/c-ray/internal/texture"

// Arena owns every node ever constructed during scene load: four
// append-only slices (one per node kind) plus the hash-consing tables
// that dedupe construction requests against them. It is built once
// during scene load and read only during rendering (spec.md §4.4,
// §5 "the node arena is append-only during scene construction and
// read-only during rendering").
type Arena struct {
	colors   []colorDescriptor
	values   []valueDescriptor
	vectors  []vectorDescriptor
	bsdfs    []bsdfDescriptor
	textures []*texture.Image

	colorTable  *table[colorDescriptor]
	valueTable  *table[valueDescriptor]
	vectorTable *table[vectorDescriptor]
	bsdfTable   *table[bsdfDescriptor]
}

// NewArena returns an empty arena ready for node construction.
func NewArena() *Arena {
	a := &Arena{}
	a.colorTable = newTable(hashColorDescriptor, equalColorDescriptor)
	a.valueTable = newTable(hashValueDescriptor, equalValueDescriptor)
	a.vectorTable = newTable(hashVectorDescriptor, equalVectorDescriptor)
	a.bsdfTable = newTable(hashBsdfDescriptor, equalBsdfDescriptor)
	return a
}

// Stats returns the number of distinct nodes constructed per kind,
// useful for tests that assert hash-consing actually deduplicated
// textually identical subgraphs (spec.md §8 invariant 3).
func (a *Arena) Stats() (colors, values, vectors, bsdfs int) {
	return len(a.colors), len(a.values), len(a.vectors), len(a.bsdfs)
}

func (a *Arena) internColor(d colorDescriptor) ColorID {
	return ColorID(a.colorTable.intern(d, func(d colorDescriptor) uint32 {
		a.colors = append(a.colors, d)
		return uint32(len(a.colors)) // 1-based; 0 stays NilColor.
	}))
}

func (a *Arena) internValue(d valueDescriptor) ValueID {
	return ValueID(a.valueTable.intern(d, func(d valueDescriptor) uint32 {
		a.values = append(a.values, d)
		return uint32(len(a.values))
	}))
}

func (a *Arena) internVector(d vectorDescriptor) VectorID {
	return VectorID(a.vectorTable.intern(d, func(d vectorDescriptor) uint32 {
		a.vectors = append(a.vectors, d)
		return uint32(len(a.vectors))
	}))
}

func (a *Arena) internBsdf(d bsdfDescriptor) BsdfID {
	return BsdfID(a.bsdfTable.intern(d, func(d bsdfDescriptor) uint32 {
		a.bsdfs = append(a.bsdfs, d)
		return uint32(len(a.bsdfs))
	}))
}

func (a *Arena) color(id ColorID) colorDescriptor {
	if id == NilColor {
		return colorDescriptor{kind: colorConstant, constant: defaultColor}
	}
	return a.colors[id-1]
}

func (a *Arena) value(id ValueID) valueDescriptor {
	if id == NilValue {
		return valueDescriptor{kind: valueConstant, constant: defaultRoughness}
	}
	return a.values[id-1]
}

func (a *Arena) vector(id VectorID) vectorDescriptor {
	if id == NilVector {
		return vectorDescriptor{kind: vectorConstant}
	}
	return a.vectors[id-1]
}

func (a *Arena) bsdf(id BsdfID) bsdfDescriptor {
	if id == NilBsdf {
		return bsdfDescriptor{kind: bsdfDiffuse, color: NilColor}
	}
	return a.bsdfs[id-1]
}

package node

// ColorID, ValueID, VectorID and BsdfID each index into their own
// namespace within an Arena. The zero value of every ID type means
// "no node supplied"; evaluation substitutes the defaults named in
// spec.md §4.4 ("color->black, roughness->0, IOR->1.45").
type (
	ColorID  uint32
	ValueID  uint32
	VectorID uint32
	BsdfID   uint32
)

const (
	NilColor  ColorID  = 0
	NilValue  ValueID  = 0
	NilVector VectorID = 0
	NilBsdf   BsdfID   = 0
)

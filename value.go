package motionrig

import "math"

// Kind tags a Value's variant. The discriminant serializes as its lowercase
// name (see value_json.go), matching the wire envelope in spec §6.
type Kind uint8

const (
	KindScalar Kind = iota
	KindVec2
	KindVec3
	KindVec4
	KindQuat
	KindColor
	KindTransform
	KindBool
	KindText
	KindVector
	KindRecord
	KindArray
	KindList
	KindTuple
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "float"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindVec4:
		return "vec4"
	case KindQuat:
		return "quat"
	case KindColor:
		return "color"
	case KindTransform:
		return "transform"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindVector:
		return "vector"
	case KindRecord:
		return "record"
	case KindArray:
		return "array"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Quat is a quaternion (x, y, z, w).
type Quat struct{ X, Y, Z, W float32 }

// ColorRgba is a non-premultiplied RGBA color in [0,1] per channel, matching
// the teacher's willow.Color layout but carried as a Value variant.
type ColorRgba struct{ R, G, B, A float32 }

// Transform is a leaf TRS value — translation, rotation, scale — as sampled
// from a single keyframe track. It is not a scene-graph composition; there is
// no parent/child matrix multiply here (that machinery renders, and
// rendering is out of scope).
type Transform struct {
	Translation [3]float32
	Rotation    Quat
	Scale       [3]float32
}

// RecordField is one ordered entry of a Record value.
type RecordField struct {
	Key   string
	Value Value
}

// Enum is a tagged payload value (Value variant KindEnum).
type Enum struct {
	Tag     string
	Payload Value
}

// Value is the tagged sum described in spec §3. Exactly one of the typed
// fields is meaningful, selected by Kind. Constructors (NewScalar, NewVec3,
// ...) are the preferred way to build one; the zero Value is KindScalar 0.
type Value struct {
	Kind Kind

	scalar float32
	vec    [4]float32 // backs Vec2/Vec3/Vec4
	quat   Quat
	color  ColorRgba
	xform  Transform
	b      bool
	text   string
	vector []float32
	record []RecordField
	items  []Value // Array/List/Tuple
	enum   Enum
}

func NewScalar(v float32) Value { return Value{Kind: KindScalar, scalar: v} }
func NewBool(v bool) Value      { return Value{Kind: KindBool, b: v} }
func NewText(v string) Value    { return Value{Kind: KindText, text: v} }

func NewVec2(x, y float32) Value { return Value{Kind: KindVec2, vec: [4]float32{x, y}} }
func NewVec3(x, y, z float32) Value {
	return Value{Kind: KindVec3, vec: [4]float32{x, y, z}}
}
func NewVec4(x, y, z, w float32) Value {
	return Value{Kind: KindVec4, vec: [4]float32{x, y, z, w}}
}
func NewQuat(x, y, z, w float32) Value { return Value{Kind: KindQuat, quat: Quat{x, y, z, w}} }
func NewColor(r, g, b, a float32) Value {
	return Value{Kind: KindColor, color: ColorRgba{r, g, b, a}}
}
func NewTransform(t Transform) Value { return Value{Kind: KindTransform, xform: t} }
func NewVector(vs []float32) Value {
	cp := make([]float32, len(vs))
	copy(cp, vs)
	return Value{Kind: KindVector, vector: cp}
}
func NewRecord(fields []RecordField) Value {
	cp := make([]RecordField, len(fields))
	copy(cp, fields)
	return Value{Kind: KindRecord, record: cp}
}
func NewArray(items []Value) Value { return Value{Kind: KindArray, items: cloneValues(items)} }
func NewList(items []Value) Value  { return Value{Kind: KindList, items: cloneValues(items)} }
func NewTuple(items []Value) Value { return Value{Kind: KindTuple, items: cloneValues(items)} }
func NewEnum(tag string, payload Value) Value {
	return Value{Kind: KindEnum, enum: Enum{Tag: tag, Payload: payload}}
}

// NaNOfShape constructs a shape-typed "null" value per spec §4.9: numeric
// shapes are NaN-filled, structural shapes are structurally empty.
func NaNOfShape(s Shape) Value {
	nan := float32(math.NaN())
	switch s.ID {
	case ShapeFloat:
		return NewScalar(nan)
	case ShapeBool:
		return NewBool(false)
	case ShapeText:
		return NewText("")
	case ShapeVec2:
		return NewVec2(nan, nan)
	case ShapeVec3:
		return NewVec3(nan, nan, nan)
	case ShapeVec4:
		return NewVec4(nan, nan, nan, nan)
	case ShapeQuat:
		return NewQuat(nan, nan, nan, nan)
	case ShapeColor:
		return NewColor(nan, nan, nan, nan)
	case ShapeTransform:
		return NewTransform(Transform{
			Translation: [3]float32{nan, nan, nan},
			Rotation:    Quat{nan, nan, nan, nan},
			Scale:       [3]float32{nan, nan, nan},
		})
	case ShapeVector:
		v := make([]float32, s.Size)
		for i := range v {
			v[i] = nan
		}
		return NewVector(v)
	case ShapeRecord:
		fields := make([]RecordField, 0, len(s.Fields))
		for _, f := range s.Fields {
			fields = append(fields, RecordField{Key: f.Name, Value: NaNOfShape(f.Shape)})
		}
		return NewRecord(fields)
	case ShapeArray:
		return NewArray(nil)
	case ShapeList:
		return NewList(nil)
	case ShapeTuple:
		items := make([]Value, len(s.Elements))
		for i, el := range s.Elements {
			items[i] = NaNOfShape(el)
		}
		return NewTuple(items)
	case ShapeEnum:
		return NewEnum("", Value{})
	default:
		return NewScalar(nan)
	}
}

func cloneValues(vs []Value) []Value {
	cp := make([]Value, len(vs))
	for i, v := range vs {
		cp[i] = v.Clone()
	}
	return cp
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	out := v
	if v.vector != nil {
		out.vector = append([]float32(nil), v.vector...)
	}
	if v.record != nil {
		out.record = make([]RecordField, len(v.record))
		for i, f := range v.record {
			out.record[i] = RecordField{Key: f.Key, Value: f.Value.Clone()}
		}
	}
	if v.items != nil {
		out.items = cloneValues(v.items)
	}
	if v.Kind == KindEnum {
		out.enum = Enum{Tag: v.enum.Tag, Payload: v.enum.Payload.Clone()}
	}
	return out
}

// Accessors. Panics are never used for variant mismatch; callers that need
// to branch on Kind do so explicitly.

func (v Value) AsScalar() float32    { return v.scalar }
func (v Value) AsBool() bool         { return v.b }
func (v Value) AsText() string       { return v.text }
func (v Value) AsVec2() (x, y float32) { return v.vec[0], v.vec[1] }
func (v Value) AsVec3() (x, y, z float32) {
	return v.vec[0], v.vec[1], v.vec[2]
}
func (v Value) AsVec4() (x, y, z, w float32) {
	return v.vec[0], v.vec[1], v.vec[2], v.vec[3]
}
func (v Value) AsQuat() Quat             { return v.quat }
func (v Value) AsColor() ColorRgba       { return v.color }
func (v Value) AsTransform() Transform   { return v.xform }
func (v Value) AsVector() []float32      { return v.vector }
func (v Value) AsRecord() []RecordField  { return v.record }
func (v Value) AsItems() []Value         { return v.items }
func (v Value) AsEnum() Enum             { return v.enum }

// Field looks up a Record/Enum-payload field by name. Returns (value, true)
// on success, matching the selector "field" accessor in spec §3/§4.1/§4.9.
func (v Value) Field(name string) (Value, bool) {
	switch v.Kind {
	case KindRecord:
		for _, f := range v.record {
			if f.Key == name {
				return f.Value, true
			}
		}
	case KindEnum:
		if v.enum.Tag == name {
			return v.enum.Payload, true
		}
	}
	return Value{}, false
}

// Index looks up the i'th scalar/element for container-like kinds, matching
// the selector "index" accessor: Array/List/Tuple by element, Vector by
// component, VecN/Quat/Color by component.
func (v Value) Index(i int) (Value, bool) {
	switch v.Kind {
	case KindArray, KindList, KindTuple:
		if i < 0 || i >= len(v.items) {
			return Value{}, false
		}
		return v.items[i], true
	case KindVector:
		if i < 0 || i >= len(v.vector) {
			return Value{}, false
		}
		return NewScalar(v.vector[i]), true
	case KindVec2, KindVec3, KindVec4:
		n := kindArity(v.Kind)
		if i < 0 || i >= n {
			return Value{}, false
		}
		return NewScalar(v.vec[i]), true
	case KindQuat:
		if i < 0 || i >= 4 {
			return Value{}, false
		}
		arr := [4]float32{v.quat.X, v.quat.Y, v.quat.Z, v.quat.W}
		return NewScalar(arr[i]), true
	case KindColor:
		if i < 0 || i >= 4 {
			return Value{}, false
		}
		arr := [4]float32{v.color.R, v.color.G, v.color.B, v.color.A}
		return NewScalar(arr[i]), true
	}
	return Value{}, false
}

func kindArity(k Kind) int {
	switch k {
	case KindVec2:
		return 2
	case KindVec3:
		return 3
	case KindVec4:
		return 4
	default:
		return 0
	}
}

// SelectorStep is one accessor in a Selector path (spec §3: {field} | {index}).
type SelectorStep struct {
	Field string // non-empty selects Field(Field)
	Index int    // used when IsIndex is true
	IsIndex bool
}

// FieldStep builds a field accessor.
func FieldStep(name string) SelectorStep { return SelectorStep{Field: name} }

// IndexStep builds an index accessor.
func IndexStep(i int) SelectorStep { return SelectorStep{Index: i, IsIndex: true} }

// Selector is an ordered list of accessors applied to an upstream value
// (spec §3, §4.1, §4.9). Evaluation failure returns a typed error; there is
// no silent defaulting.
type Selector []SelectorStep

// Apply walks v through each step in sel, returning a typed error on the
// first accessor that cannot be satisfied.
func (sel Selector) Apply(v Value) (Value, error) {
	cur := v
	for i, step := range sel {
		var ok bool
		if step.IsIndex {
			cur, ok = cur.Index(step.Index)
			if !ok {
				return Value{}, newErr(ErrInvalidArg, map[string]any{"step": i, "index": step.Index},
					"selector: index %d not applicable to kind %s at step %d", step.Index, cur.Kind, i)
			}
		} else {
			cur, ok = cur.Field(step.Field)
			if !ok {
				return Value{}, newErr(ErrInvalidArg, map[string]any{"step": i, "field": step.Field},
					"selector: field %q not applicable at step %d", step.Field, i)
			}
		}
	}
	return cur, nil
}

// Equal reports deep structural equality. NaN scalar components compare
// equal to NaN components (bitwise-distinct from IEEE754 semantics) so that
// NaN-filled shape-mismatch values round-trip through equality tests used in
// the JSON round-trip property (spec §8).
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindScalar:
		return scalarEq(v.scalar, o.scalar)
	case KindBool:
		return v.b == o.b
	case KindText:
		return v.text == o.text
	case KindVec2, KindVec3, KindVec4:
		n := kindArity(v.Kind)
		for i := 0; i < n; i++ {
			if !scalarEq(v.vec[i], o.vec[i]) {
				return false
			}
		}
		return true
	case KindQuat:
		return scalarEq(v.quat.X, o.quat.X) && scalarEq(v.quat.Y, o.quat.Y) &&
			scalarEq(v.quat.Z, o.quat.Z) && scalarEq(v.quat.W, o.quat.W)
	case KindColor:
		return scalarEq(v.color.R, o.color.R) && scalarEq(v.color.G, o.color.G) &&
			scalarEq(v.color.B, o.color.B) && scalarEq(v.color.A, o.color.A)
	case KindTransform:
		for i := 0; i < 3; i++ {
			if !scalarEq(v.xform.Translation[i], o.xform.Translation[i]) ||
				!scalarEq(v.xform.Scale[i], o.xform.Scale[i]) {
				return false
			}
		}
		rq, oq := v.xform.Rotation, o.xform.Rotation
		return scalarEq(rq.X, oq.X) && scalarEq(rq.Y, oq.Y) && scalarEq(rq.Z, oq.Z) && scalarEq(rq.W, oq.W)
	case KindVector:
		if len(v.vector) != len(o.vector) {
			return false
		}
		for i := range v.vector {
			if !scalarEq(v.vector[i], o.vector[i]) {
				return false
			}
		}
		return true
	case KindRecord:
		if len(v.record) != len(o.record) {
			return false
		}
		for i := range v.record {
			if v.record[i].Key != o.record[i].Key || !v.record[i].Value.Equal(o.record[i].Value) {
				return false
			}
		}
		return true
	case KindArray, KindList, KindTuple:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindEnum:
		return v.enum.Tag == o.enum.Tag && v.enum.Payload.Equal(o.enum.Payload)
	}
	return false
}

func scalarEq(a, b float32) bool {
	if math.IsNaN(float64(a)) && math.IsNaN(float64(b)) {
		return true
	}
	return a == b
}

// FlattenInto appends every scalar leaf of v, in stable traversal order, to
// dst and returns the extended slice. This backs the numeric flattening view
// in spec §4.1, generalized from the teacher's particle.go componentwise
// lerp helpers (lerp/lerp32) into a full tree walk reused by blending and by
// the graph's vector nodes.
func (v Value) FlattenInto(dst []float32) []float32 {
	switch v.Kind {
	case KindScalar:
		return append(dst, v.scalar)
	case KindVec2, KindVec3, KindVec4:
		return append(dst, v.vec[:kindArity(v.Kind)]...)
	case KindQuat:
		return append(dst, v.quat.X, v.quat.Y, v.quat.Z, v.quat.W)
	case KindColor:
		return append(dst, v.color.R, v.color.G, v.color.B, v.color.A)
	case KindTransform:
		dst = append(dst, v.xform.Translation[:]...)
		dst = append(dst, v.xform.Rotation.X, v.xform.Rotation.Y, v.xform.Rotation.Z, v.xform.Rotation.W)
		dst = append(dst, v.xform.Scale[:]...)
		return dst
	case KindVector:
		return append(dst, v.vector...)
	case KindRecord:
		for _, f := range v.record {
			dst = f.Value.FlattenInto(dst)
		}
		return dst
	case KindArray, KindList, KindTuple:
		for _, it := range v.items {
			dst = it.FlattenInto(dst)
		}
		return dst
	case KindEnum:
		return v.enum.Payload.FlattenInto(dst)
	default:
		return dst
	}
}

// FlattenCount reports how many scalar leaves FlattenInto would append,
// without allocating.
func (v Value) FlattenCount() int {
	switch v.Kind {
	case KindScalar:
		return 1
	case KindBool, KindText:
		return 0
	case KindVec2, KindVec3, KindVec4:
		return kindArity(v.Kind)
	case KindQuat:
		return 4
	case KindColor:
		return 4
	case KindTransform:
		return 10
	case KindVector:
		return len(v.vector)
	case KindRecord:
		n := 0
		for _, f := range v.record {
			n += f.Value.FlattenCount()
		}
		return n
	case KindArray, KindList, KindTuple:
		n := 0
		for _, it := range v.items {
			n += it.FlattenCount()
		}
		return n
	case KindEnum:
		return v.enum.Payload.FlattenCount()
	default:
		return 0
	}
}

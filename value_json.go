package motionrig

import (
	"encoding/json"
	"fmt"
)

// Value JSON has two accepted shapes (spec §6):
//
//   - legacy envelope: {"vec3": [1,2,3]}, {"float": 1.5}, ...
//   - canonical form:  {"type": "vec3", "data": [1,2,3]}
//
// Both decode to the same Value; MarshalJSON always emits canonical form.

type valueEnvelope struct {
	Type string          `json:"type,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`

	// Legacy per-kind keys, checked when Type is empty.
	Float     *float32          `json:"float,omitempty"`
	Bool      *bool             `json:"bool,omitempty"`
	Text      *string           `json:"text,omitempty"`
	Vec2      *[2]float32       `json:"vec2,omitempty"`
	Vec3      *[3]float32       `json:"vec3,omitempty"`
	Vec4      *[4]float32       `json:"vec4,omitempty"`
	Quat      *[4]float32       `json:"quat,omitempty"`
	Color     *[4]float32       `json:"color,omitempty"`
	Transform *transformJSON    `json:"transform,omitempty"`
	Vector    []float32         `json:"vector,omitempty"`
	Record    []recordFieldJSON `json:"record,omitempty"`
	Array     []json.RawMessage `json:"array,omitempty"`
	List      []json.RawMessage `json:"list,omitempty"`
	Tuple     []json.RawMessage `json:"tuple,omitempty"`
	Enum      *enumJSON         `json:"enum,omitempty"`
}

type transformJSON struct {
	Translation [3]float32 `json:"translation"`
	Rotation    [4]float32 `json:"rotation"`
	Scale       [3]float32 `json:"scale"`
}

type recordFieldJSON struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type enumJSON struct {
	Tag     string          `json:"tag"`
	Payload json.RawMessage `json:"payload"`
}

// MarshalJSON emits the canonical {"type": "...", "data": ...} form.
func (v Value) MarshalJSON() ([]byte, error) {
	var data any
	switch v.Kind {
	case KindScalar:
		data = v.scalar
	case KindBool:
		data = v.b
	case KindText:
		data = v.text
	case KindVec2:
		data = [2]float32{v.vec[0], v.vec[1]}
	case KindVec3:
		data = [3]float32{v.vec[0], v.vec[1], v.vec[2]}
	case KindVec4:
		data = [4]float32{v.vec[0], v.vec[1], v.vec[2], v.vec[3]}
	case KindQuat:
		data = [4]float32{v.quat.X, v.quat.Y, v.quat.Z, v.quat.W}
	case KindColor:
		data = [4]float32{v.color.R, v.color.G, v.color.B, v.color.A}
	case KindTransform:
		data = transformJSON{
			Translation: v.xform.Translation,
			Rotation:    [4]float32{v.xform.Rotation.X, v.xform.Rotation.Y, v.xform.Rotation.Z, v.xform.Rotation.W},
			Scale:       v.xform.Scale,
		}
	case KindVector:
		data = v.vector
	case KindRecord:
		fields := make([]recordFieldJSON, len(v.record))
		for i, f := range v.record {
			raw, err := json.Marshal(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = recordFieldJSON{Key: f.Key, Value: raw}
		}
		data = fields
	case KindArray, KindList, KindTuple:
		raws := make([]json.RawMessage, len(v.items))
		for i, it := range v.items {
			raw, err := json.Marshal(it)
			if err != nil {
				return nil, err
			}
			raws[i] = raw
		}
		data = raws
	case KindEnum:
		raw, err := json.Marshal(v.enum.Payload)
		if err != nil {
			return nil, err
		}
		data = enumJSON{Tag: v.enum.Tag, Payload: raw}
	default:
		return nil, fmt.Errorf("%w: unknown value kind %d", ErrParse, v.Kind)
	}
	dataRaw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}{Type: v.Kind.String(), Data: dataRaw})
}

// UnmarshalJSON accepts both canonical and legacy envelope forms.
func (v *Value) UnmarshalJSON(b []byte) error {
	var env valueEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return fmt.Errorf("%w: value envelope: %v", ErrParse, err)
	}

	typ := env.Type
	data := env.Data
	if typ == "" {
		switch {
		case env.Float != nil:
			typ, data = "float", mustRaw(*env.Float)
		case env.Bool != nil:
			typ, data = "bool", mustRaw(*env.Bool)
		case env.Text != nil:
			typ, data = "text", mustRaw(*env.Text)
		case env.Vec2 != nil:
			typ, data = "vec2", mustRaw(*env.Vec2)
		case env.Vec3 != nil:
			typ, data = "vec3", mustRaw(*env.Vec3)
		case env.Vec4 != nil:
			typ, data = "vec4", mustRaw(*env.Vec4)
		case env.Quat != nil:
			typ, data = "quat", mustRaw(*env.Quat)
		case env.Color != nil:
			typ, data = "color", mustRaw(*env.Color)
		case env.Transform != nil:
			typ, data = "transform", mustRaw(*env.Transform)
		case env.Vector != nil:
			typ, data = "vector", mustRaw(env.Vector)
		case env.Record != nil:
			typ, data = "record", mustRaw(env.Record)
		case env.Array != nil:
			typ, data = "array", mustRaw(env.Array)
		case env.List != nil:
			typ, data = "list", mustRaw(env.List)
		case env.Tuple != nil:
			typ, data = "tuple", mustRaw(env.Tuple)
		case env.Enum != nil:
			typ, data = "enum", mustRaw(*env.Enum)
		default:
			return fmt.Errorf("%w: value envelope has no recognized discriminant", ErrParse)
		}
	}

	switch typ {
	case "float":
		var f float32
		if err := json.Unmarshal(data, &f); err != nil {
			return wrapParse("float", err)
		}
		*v = NewScalar(f)
	case "bool":
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return wrapParse("bool", err)
		}
		*v = NewBool(b)
	case "text":
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return wrapParse("text", err)
		}
		*v = NewText(s)
	case "vec2":
		var a [2]float32
		if err := json.Unmarshal(data, &a); err != nil {
			return wrapParse("vec2", err)
		}
		*v = NewVec2(a[0], a[1])
	case "vec3":
		var a [3]float32
		if err := json.Unmarshal(data, &a); err != nil {
			return wrapParse("vec3", err)
		}
		*v = NewVec3(a[0], a[1], a[2])
	case "vec4":
		var a [4]float32
		if err := json.Unmarshal(data, &a); err != nil {
			return wrapParse("vec4", err)
		}
		*v = NewVec4(a[0], a[1], a[2], a[3])
	case "quat":
		var a [4]float32
		if err := json.Unmarshal(data, &a); err != nil {
			return wrapParse("quat", err)
		}
		*v = NewQuat(a[0], a[1], a[2], a[3])
	case "color":
		var a [4]float32
		if err := json.Unmarshal(data, &a); err != nil {
			return wrapParse("color", err)
		}
		*v = NewColor(a[0], a[1], a[2], a[3])
	case "transform":
		var t transformJSON
		if err := json.Unmarshal(data, &t); err != nil {
			return wrapParse("transform", err)
		}
		*v = NewTransform(Transform{
			Translation: t.Translation,
			Rotation:    Quat{t.Rotation[0], t.Rotation[1], t.Rotation[2], t.Rotation[3]},
			Scale:       t.Scale,
		})
	case "vector":
		var vec []float32
		if err := json.Unmarshal(data, &vec); err != nil {
			return wrapParse("vector", err)
		}
		*v = NewVector(vec)
	case "record":
		var fields []recordFieldJSON
		if err := json.Unmarshal(data, &fields); err != nil {
			return wrapParse("record", err)
		}
		out := make([]RecordField, len(fields))
		for i, f := range fields {
			var val Value
			if err := json.Unmarshal(f.Value, &val); err != nil {
				return wrapParse("record field "+f.Key, err)
			}
			out[i] = RecordField{Key: f.Key, Value: val}
		}
		*v = NewRecord(out)
	case "array", "list", "tuple":
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return wrapParse(typ, err)
		}
		items := make([]Value, len(raws))
		for i, raw := range raws {
			if err := json.Unmarshal(raw, &items[i]); err != nil {
				return wrapParse(fmt.Sprintf("%s[%d]", typ, i), err)
			}
		}
		switch typ {
		case "array":
			*v = NewArray(items)
		case "list":
			*v = NewList(items)
		case "tuple":
			*v = NewTuple(items)
		}
	case "enum":
		var e enumJSON
		if err := json.Unmarshal(data, &e); err != nil {
			return wrapParse("enum", err)
		}
		var payload Value
		if len(e.Payload) > 0 {
			if err := json.Unmarshal(e.Payload, &payload); err != nil {
				return wrapParse("enum payload", err)
			}
		}
		*v = NewEnum(e.Tag, payload)
	default:
		return fmt.Errorf("%w: unknown value type %q", ErrParse, typ)
	}
	return nil
}

func mustRaw(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func wrapParse(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrParse, what, err)
}

// --- Shape JSON ---

type shapeFieldJSON struct {
	Name  string `json:"name"`
	Shape Shape  `json:"shape"`
}

type shapeJSON struct {
	ID     string           `json:"id"`
	Sizes  []int            `json:"sizes,omitempty"`
	Fields []shapeFieldJSON `json:"fields,omitempty"`
	// Elements carries tuple per-slot shapes, or a single-element slice for
	// array/list element shape.
	Elements []Shape `json:"elements,omitempty"`
}

// MarshalJSON emits {"id": "<primitive>"|"record"|..., "sizes"?, "fields"?, "elements"?}.
// Fields is an ordered list (not a map) so that Shape -> JSON -> Shape
// round-trips exactly, including field order (spec §8).
func (s Shape) MarshalJSON() ([]byte, error) {
	out := shapeJSON{ID: s.ID.String()}
	if s.ID == ShapeVector {
		out.Sizes = []int{s.Size}
	}
	if len(s.Fields) > 0 {
		out.Fields = make([]shapeFieldJSON, len(s.Fields))
		for i, f := range s.Fields {
			out.Fields[i] = shapeFieldJSON{Name: f.Name, Shape: f.Shape}
		}
	}
	if len(s.Elements) > 0 {
		out.Elements = s.Elements
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the Shape JSON form described in spec §6. Fields
// decodes as an ordered slice, so record/enum field order survives the
// round trip (spec §8).
func (s *Shape) UnmarshalJSON(b []byte) error {
	var in shapeJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return fmt.Errorf("%w: shape: %v", ErrParse, err)
	}
	var id ShapeID
	switch in.ID {
	case "float":
		id = ShapeFloat
	case "bool":
		id = ShapeBool
	case "text":
		id = ShapeText
	case "vec2":
		id = ShapeVec2
	case "vec3":
		id = ShapeVec3
	case "vec4":
		id = ShapeVec4
	case "quat":
		id = ShapeQuat
	case "color":
		id = ShapeColor
	case "transform":
		id = ShapeTransform
	case "vector":
		id = ShapeVector
	case "record":
		id = ShapeRecord
	case "array":
		id = ShapeArray
	case "list":
		id = ShapeList
	case "tuple":
		id = ShapeTuple
	case "enum":
		id = ShapeEnum
	default:
		return fmt.Errorf("%w: unknown shape id %q", ErrParse, in.ID)
	}
	out := Shape{ID: id}
	if id == ShapeVector && len(in.Sizes) > 0 {
		out.Size = in.Sizes[0]
	}
	if len(in.Fields) > 0 {
		out.Fields = make([]ShapeField, len(in.Fields))
		for i, f := range in.Fields {
			out.Fields[i] = ShapeField{Name: f.Name, Shape: f.Shape}
		}
	}
	if len(in.Elements) > 0 {
		out.Elements = in.Elements
	}
	*s = out
	return nil
}

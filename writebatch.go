package motionrig

// WriteOp is a single typed write to a destination path (spec §3/§4.2).
// Shape is optional: it is populated when the producing node/track declared
// one, nil-equivalent (zero Shape with ID ShapeFloat is NOT treated as
// "absent" — HasShape distinguishes the two).
type WriteOp struct {
	Path     TypedPath
	Value    Value
	Shape    Shape
	HasShape bool
}

// WriteBatch is an ordered list of WriteOps. Append order is preserved and
// defines downstream conflict-resolution order (spec §4.2).
type WriteBatch struct {
	Ops []WriteOp
}

// Append adds op to the batch, preserving order.
func (b *WriteBatch) Append(op WriteOp) {
	b.Ops = append(b.Ops, op)
}

// Len reports the number of writes in the batch.
func (b *WriteBatch) Len() int { return len(b.Ops) }

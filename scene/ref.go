package scene

// Ref is a stable reference to a motion record. The registry zeroes ID when
// the record is removed, so holders can tell a dangling reference apart
// without keeping the record alive.
type Ref struct {
	ID RecordID
}

// Valid reports whether the referenced record still existed at last removal.
func (r *Ref) Valid() bool {
	return r != nil && r.ID != 0
}

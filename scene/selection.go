package scene

// Selection tracks the entity the user is manipulating. It holds a Ref, so
// a record removed by any path (delete, collision, expiry) reads as no
// selection without the remover having to know about it.
type Selection struct {
	registry *Registry
	ref      *Ref
}

// NewSelection creates an empty selection over registry.
func NewSelection(registry *Registry) *Selection {
	return &Selection{registry: registry}
}

// Set selects the record with the given ID. It reports false and leaves the
// selection unchanged if the record does not exist.
func (s *Selection) Set(id RecordID) bool {
	ref := s.registry.Ref(id)
	if ref == nil {
		return false
	}
	s.ref = ref
	return true
}

// SetHandle selects the record registered for h.
func (s *Selection) SetHandle(h Handle) bool {
	rec, ok := s.registry.Lookup(h)
	if !ok {
		return false
	}
	return s.Set(rec.ID)
}

// Clear deselects.
func (s *Selection) Clear() {
	s.ref = nil
}

// Record returns the selected record, clearing a dangling selection.
func (s *Selection) Record() (*Record, bool) {
	rec, ok := s.registry.Resolve(s.ref)
	if !ok {
		s.ref = nil
	}
	return rec, ok
}

// ID returns the selected record ID, or 0 when nothing is selected.
func (s *Selection) ID() RecordID {
	if rec, ok := s.Record(); ok {
		return rec.ID
	}
	return 0
}

package scene

import (
	"iter"
	"slices"
	"weak"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// RegistryStats is a point-in-time summary of the registry.
type RegistryStats struct {
	Targets     int
	Projectiles int
	Created     uint64
	Removed     uint64
}

// Registry owns the motion records of targets and projectiles. Lookups by
// handle and by record ID are both O(1); the two collections keep
// insertion order for iteration.
type Registry struct {
	renderer Renderer
	log      *zap.Logger

	records  *intmap.Map[RecordID, *Record]
	byHandle *intmap.Map[Handle, RecordID]
	refs     *intmap.Map[RecordID, weak.Pointer[Ref]]

	targets     []RecordID
	projectiles []RecordID

	serial  uint32
	created uint64
	removed uint64
}

// NewRegistry creates an empty registry that asks renderer to drop visuals
// on removal. A nil logger disables logging.
func NewRegistry(renderer Renderer, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		renderer: renderer,
		log:      logger,
		records:  intmap.New[RecordID, *Record](64),
		byHandle: intmap.New[Handle, RecordID](64),
		refs:     intmap.New[RecordID, weak.Pointer[Ref]](64),
	}
}

// AddTarget registers h in the targets collection.
func (r *Registry) AddTarget(h Handle, velocity mgl64.Vec3, ttl float64) RecordID {
	return r.add(ClassTarget, h, velocity, ttl)
}

// AddProjectile registers h in the projectiles collection.
func (r *Registry) AddProjectile(h Handle, velocity mgl64.Vec3, ttl float64) RecordID {
	return r.add(ClassProjectile, h, velocity, ttl)
}

func (r *Registry) add(class Class, h Handle, velocity mgl64.Vec3, ttl float64) RecordID {
	if h == NullHandle {
		panic("scene: cannot register the null handle")
	}

	if id, ok := r.byHandle.Get(h); ok {
		rec, _ := r.records.Get(id)
		if rec.Class == class {
			rec.Velocity = velocity
			rec.TTL = ttl
			return id
		}
		// A handle lives in one collection only; moving it issues a new ID.
		r.detach(id)
	}

	r.serial++
	id := NewRecordID(class, r.serial)
	rec := &Record{
		ID:       id,
		Handle:   h,
		Class:    class,
		Velocity: velocity,
		TTL:      ttl,
		Radius:   DefaultRadius,
	}

	r.records.Put(id, rec)
	r.byHandle.Put(h, id)
	if class == ClassProjectile {
		r.projectiles = append(r.projectiles, id)
	} else {
		r.targets = append(r.targets, id)
	}
	r.created++

	r.log.Debug("record added",
		zap.Uint64("record", uint64(id)),
		zap.Uint64("handle", uint64(h)),
		zap.Stringer("class", class))
	return id
}

// ApplyVelocityOrCreate adds dv to the velocity of the record for h, or
// registers h as a target moving at dv. Impulses from several sources in
// the same tick accumulate.
func (r *Registry) ApplyVelocityOrCreate(h Handle, dv mgl64.Vec3) RecordID {
	if id, ok := r.byHandle.Get(h); ok {
		rec, _ := r.records.Get(id)
		rec.Velocity = rec.Velocity.Add(dv)
		return id
	}
	return r.add(ClassTarget, h, dv, Forever)
}

// Flag marks the record for removal by the next expiry sweep.
func (r *Registry) Flag(id RecordID) bool {
	rec, ok := r.records.Get(id)
	if !ok {
		return false
	}
	rec.TTL = 0
	return true
}

// Remove drops the record and asks the renderer to remove its visual.
// Removing an unknown ID is a no-op.
func (r *Registry) Remove(id RecordID) bool {
	rec, ok := r.detach(id)
	if !ok {
		return false
	}
	if r.renderer != nil {
		r.renderer.RemoveVisual(rec.Handle)
	}
	r.removed++

	r.log.Debug("record removed",
		zap.Uint64("record", uint64(id)),
		zap.Uint64("handle", uint64(rec.Handle)))
	return true
}

func (r *Registry) detach(id RecordID) (*Record, bool) {
	rec, ok := r.records.Get(id)
	if !ok {
		return nil, false
	}

	r.records.Del(id)
	r.byHandle.Del(rec.Handle)

	match := func(other RecordID) bool { return other == id }
	if rec.Class == ClassProjectile {
		r.projectiles = slices.DeleteFunc(r.projectiles, match)
	} else {
		r.targets = slices.DeleteFunc(r.targets, match)
	}

	if weakPtr, ok := r.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.ID = 0
		}
		r.refs.Del(id)
	}
	return rec, true
}

// Get returns the record with the given ID.
func (r *Registry) Get(id RecordID) (*Record, bool) {
	return r.records.Get(id)
}

// Lookup returns the record registered for handle h.
func (r *Registry) Lookup(h Handle) (*Record, bool) {
	id, ok := r.byHandle.Get(h)
	if !ok {
		return nil, false
	}
	return r.records.Get(id)
}

// Ref returns a stable reference to the record, or nil if it does not
// exist. Repeated calls return the same Ref while it is reachable.
func (r *Registry) Ref(id RecordID) *Ref {
	if _, ok := r.records.Get(id); !ok {
		return nil
	}

	if weakPtr, ok := r.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		r.refs.Del(id)
	}

	ref := &Ref{ID: id}
	r.refs.Put(id, weak.Make(ref))
	return ref
}

// Resolve returns the record behind ref if it still exists.
func (r *Registry) Resolve(ref *Ref) (*Record, bool) {
	if !ref.Valid() {
		return nil, false
	}
	return r.records.Get(ref.ID)
}

// Len is the number of records in both collections.
func (r *Registry) Len() int {
	return len(r.targets) + len(r.projectiles)
}

// Targets iterates the targets collection.
func (r *Registry) Targets() iter.Seq[*Record] {
	return r.iterIDs(func() []RecordID { return slices.Clone(r.targets) })
}

// Projectiles iterates the projectiles collection.
func (r *Registry) Projectiles() iter.Seq[*Record] {
	return r.iterIDs(func() []RecordID { return slices.Clone(r.projectiles) })
}

// All iterates targets then projectiles. The sequence is computed when
// iteration starts, so it can be restarted every tick, and records removed
// mid-iteration are skipped.
func (r *Registry) All() iter.Seq[*Record] {
	return r.iterIDs(func() []RecordID { return slices.Concat(r.targets, r.projectiles) })
}

func (r *Registry) iterIDs(snapshot func() []RecordID) iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, id := range snapshot() {
			rec, ok := r.records.Get(id)
			if !ok {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Handles returns the handles of every live record, targets first.
func (r *Registry) Handles() []Handle {
	handles := make([]Handle, 0, r.Len())
	for rec := range r.All() {
		handles = append(handles, rec.Handle)
	}
	return handles
}

// Stats returns counters for the registry.
func (r *Registry) Stats() RegistryStats {
	return RegistryStats{
		Targets:     len(r.targets),
		Projectiles: len(r.projectiles),
		Created:     r.created,
		Removed:     r.removed,
	}
}

package scene

// Handle is an opaque reference to a visual owned by the renderer. The core
// only uses it for lookup and mutation requests.
type Handle uint64

// NullHandle never refers to a visual.
const NullHandle Handle = 0

// Class selects which motion collection a record belongs to.
type Class uint32

const (
	ClassTarget Class = iota + 1
	ClassProjectile
)

func (c Class) String() string {
	switch c {
	case ClassTarget:
		return "target"
	case ClassProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// RecordID encodes both the class (upper 32 bits) and the registry serial (lower 32 bits)
type RecordID uint64

// NewRecordID creates a RecordID from a class and serial
func NewRecordID(class Class, serial uint32) RecordID {
	return RecordID(uint64(class)<<32 | uint64(serial))
}

// Class extracts the class from the record ID
func (id RecordID) Class() Class {
	return Class(id >> 32)
}

// Serial extracts the serial from the record ID
func (id RecordID) Serial() uint32 {
	return uint32(id & 0xFFFFFFFF)
}

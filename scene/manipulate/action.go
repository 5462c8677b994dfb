// Package manipulate applies discrete user edits to the selected entity:
// rotate, scale, translate, add and delete.
package manipulate

//go:generate go tool stringer -type=Action

// Action is one discrete edit. Rotations and translations are about the
// entity's own local axes.
type Action int

const (
	RotateX Action = iota
	RotateY
	RotateZ
	Scale
	TranslateX
	TranslateY
	TranslateZ
	AddObject
	DeleteObject
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	return a >= RotateX && a <= DeleteObject
}

// NeedsSelection reports whether a acts on the selected entity.
func (a Action) NeedsSelection() bool {
	return a != AddObject
}

// ParseAction returns the action with the given String form.
func ParseAction(name string) (Action, bool) {
	for a := RotateX; a <= DeleteObject; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return 0, false
}

package scene

import "errors"

var (
	// ErrNoSelection is returned by operations that need a selected entity.
	ErrNoSelection = errors.New("scene: no entity selected")
	// ErrNoObserverPose is returned when tracking has not produced a pose yet.
	ErrNoObserverPose = errors.New("scene: observer pose unavailable")
	// ErrNotRegistered is returned for handles with no motion record.
	ErrNotRegistered = errors.New("scene: handle not registered")
)

package scene

// Commands provides a buffer for deferred registry operations that are executed at the end of a frame.
// This prevents structural changes to the registry while systems iterate it.
type Commands struct {
	removes []RecordID
	flags   []RecordID
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Remove queues a record removal.
func (c *Commands) Remove(id RecordID) {
	c.removes = append(c.removes, id)
}

// Flag queues a record for the next expiry sweep.
func (c *Commands) Flag(id RecordID) {
	c.flags = append(c.flags, id)
}

// Len is the number of queued operations.
func (c *Commands) Len() int {
	return len(c.removes) + len(c.flags) + len(c.defers)
}

// Flush applies all queued operations to the registry, resetting the buffer state
func (c *Commands) Flush(registry *Registry) {
	for _, id := range c.flags {
		registry.Flag(id)
	}

	for _, id := range c.removes {
		registry.Remove(id)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.removes = c.removes[:0]
	c.flags = c.flags[:0]
	c.defers = c.defers[:0]
}

package scene

// Material describes how the renderer should draw a visual. The core only
// passes it through.
type Material struct {
	Kind    string   `yaml:"kind" msgpack:"kind"`
	Texture string   `yaml:"texture,omitempty" msgpack:"texture,omitempty"`
	Tint    [3]uint8 `yaml:"tint" msgpack:"tint"`
}

// Well-known material kinds understood by the sandbox renderers.
const (
	KindCube   = "cube"
	KindJet    = "jet"
	KindBullet = "bullet"
)

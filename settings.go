package ecm

// Settings holds the parameters that control every build-pipeline stage
// (spec.md §5, §6, §7: cell resolution, error tolerance, border margin,
// pool capacities, agent clearance, epsilon). Adapted from the teacher's
// sample/solomesh Settings (same "one struct, NewSettings() defaults"
// shape) but with exported, yaml-tagged fields: the teacher's Settings
// is all lower-case unexported fields, which silently yaml.Marshals to
// nothing — fine for a build-parameter struct nothing ever serializes,
// not fine for this spec's `ecm config` subcommand, which has to produce
// a real, editable file.
type Settings struct {
	// CellSize is the render-target pixel size in world units (spec.md
	// §4.1/§4.2: distance-mesh and rasterization resolution).
	CellSize float32 `yaml:"cell_size"`
	// MaxError bounds the distance-mesh cone/tent tessellation error
	// (spec.md §4.1). Must stay below MaxDist everywhere in the scene.
	MaxError float32 `yaml:"max_error"`
	// Border is the margin added around the footprint's bounding box
	// before rasterization (spec.md §3).
	Border float32 `yaml:"border"`
	// FarPlane is the distance-mesh's orthographic far plane (spec.md
	// §4.1); must exceed the scene's maximum possible clearance.
	FarPlane float32 `yaml:"far_plane"`

	// Clearance is an agent disk radius (spec.md §4.7). `ecm query` does
	// not read it; it takes the radius from its own --clearance flag.
	Clearance float32 `yaml:"clearance"`

	// MaxVerts, MaxHalfEdges, MaxEvents are pool-capacity settings
	// (spec.md §7). The build does not read them: TraceEdges sizes the
	// WalkableSpace arenas from the classified pixel counts.
	MaxVerts     int32 `yaml:"max_verts"`
	MaxHalfEdges int32 `yaml:"max_half_edges"`
	MaxEvents    int32 `yaml:"max_events"`

	// Epsilon records the funnel solver's apex/portal coincidence
	// tolerance (spec.md §9 Open Question 3). Nothing reads it: the
	// funnel uses Corridor.Epsilon, which Extract sets to
	// corridor.DefaultEpsilon.
	Epsilon float32 `yaml:"epsilon"`
}

// NewSettings returns Settings filled with production-reasonable
// defaults (spec.md §5's suggested magnitudes).
func NewSettings() Settings {
	return Settings{
		CellSize:     float32(0.5),
		MaxError:     float32(0.25),
		Border:       float32(4.0),
		FarPlane:     float32(1000.0),
		Clearance:    float32(0.5),
		MaxVerts:     4096,
		MaxHalfEdges: 16384,
		MaxEvents:    16384,
		Epsilon:      float32(1e-6),
	}
}

package cache

// SceneKeyOpts holds every setting that changes a composed scene.
type SceneKeyOpts struct {
	Gradient      string  `json:"gradient"` // stops as "offset:#rrggbb" joined by commas
	Interpolation string  `json:"interpolation"`
	PaletteSize   int     `json:"palette_size"`
	Radius        float64 `json:"radius"`
	Blur          float64 `json:"blur"`
	MaxWeight     float64 `json:"max_weight"`
	IDSuffix      string  `json:"id_suffix"`
	Fields        string  `json:"fields"`
}

// ArtifactKeyOpts holds every setting that changes the serialized output of
// a scene.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Padding    float64 `json:"padding"`
	Fit        bool    `json:"fit"`
	Background string  `json:"background"`
	Scale      float64 `json:"scale"`
}

// Keyer derives cache keys.
type Keyer interface {
	// SceneKey keys a scene by the hash of its input records and render settings.
	SceneKey(recordsHash string, opts SceneKeyOpts) string
	// ArtifactKey keys an output file by the scene key and output settings.
	ArtifactKey(sceneKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "scene:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) SceneKey(recordsHash string, opts SceneKeyOpts) string {
	return hashKey("scene", recordsHash, opts)
}

func (DefaultKeyer) ArtifactKey(sceneKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneKey, opts)
}

var _ Keyer = DefaultKeyer{}

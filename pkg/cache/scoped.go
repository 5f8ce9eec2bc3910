package cache

// ScopedKeyer prefixes every key of an inner Keyer. Servers sharing one
// redis use it to keep deployments apart:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "heatsvg:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, which defaults to DefaultKeyer when nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SceneKey(recordsHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(recordsHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(sceneKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneKey, opts)
}

package cache

// ScopedKeyer wraps a Keyer with a prefix so that entries of one scope, such
// as an upload session, are never served to another.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "session:"+id+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(uploadHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(uploadHash, opts)
}

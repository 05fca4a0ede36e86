package cache

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey is the key of one rendered output of an upload.
	ArtifactKey(uploadHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Kind    string `json:"kind"`
	Format  string `json:"format"`
	Unit    string `json:"unit"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Title   string `json:"title,omitempty"`
	Palette string `json:"palette,omitempty"`
	Sheet   string `json:"sheet,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(uploadHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", uploadHash, opts)
}

var _ Keyer = DefaultKeyer{}

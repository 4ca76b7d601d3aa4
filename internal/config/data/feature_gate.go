package data

// FeatureGates controls optional features
type FeatureGates struct {
	// ConfigEditor enables editing the system configuration sections.
	ConfigEditor bool `yaml:"configEditor"`

	// S3Export enables uploading grid exports to S3.
	S3Export bool `yaml:"s3Export"`
}

// NewFeatureGates creates FeatureGates with default settings (all disabled)
func NewFeatureGates() FeatureGates {
	return FeatureGates{}
}

// Merge overlays another FeatureGates on top of this one
// Only enabled features in other will be applied
func (f *FeatureGates) Merge(other FeatureGates) {
	if other.ConfigEditor {
		f.ConfigEditor = true
	}
	if other.S3Export {
		f.S3Export = true
	}
}

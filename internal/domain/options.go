package domain

// CommonOptions contains shared options for orchestration
type CommonOptions struct {
	Verbose bool
	DryRun  bool
	// Check reports manifests that are not in promoted order without writing
	Check bool
}

// DefaultCommonOptions returns CommonOptions with default values.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{}
}

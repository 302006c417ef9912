package embedctl

// Version is the current version of embedctl
const Version = "1.0.0"

// VersionInfo contains detailed version information
type VersionInfo struct {
	// Version is the semantic version of the tool
	Version string
	// ServiceAPI is the embedding service API version this tool targets
	ServiceAPI string
}

// GetVersion returns the current version information
func GetVersion() VersionInfo {
	return VersionInfo{
		Version:    Version,
		ServiceAPI: "2.0.0",
	}
}

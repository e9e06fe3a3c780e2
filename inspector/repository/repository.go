package repository

// Project represents information about a scanned project
type Project struct {
	RootPath string // Absolute path to the project root directory
	Type     string // Type of project (maven, gradle, go or unknown)
	Name     string // Name of the project (extracted from build descriptors)
}

// Module represents the nearest build unit enclosing a file
type Module struct {
	Name   string // Module name used to group definitions
	Path   string // Slash separated directory relative to the project root, "" for the root itself
	Marker string // Build descriptor that identified the module
}

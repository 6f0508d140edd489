package priority

import "errors"

// Sentinel errors for the priority package
var (
	// ErrNoProjects indicates the batch file has no projects defined
	ErrNoProjects = errors.New("batch file must contain at least one project")

	// ErrEmptyDir indicates a project is missing the required dir field
	ErrEmptyDir = errors.New("project dir cannot be empty")

	// ErrNoMatch indicates a project pattern matched no Composer project
	ErrNoMatch = errors.New("pattern matched no composer project")

	// ErrInvalidFormat indicates the batch file is not valid YAML or JSON
	ErrInvalidFormat = errors.New("batch file must be valid YAML or JSON")

	// ErrFileNotFound indicates the batch file does not exist
	ErrFileNotFound = errors.New("batch file not found")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .yaml, .yml, or .json)")
)

// Package priority loads batch files that describe several Composer projects
// and the packages each one promotes, so a single run can reprioritize them all.
//
// # File Format
//
// Batch files can be written in YAML or JSON format:
//
//	projects:
//	  - dir: ./apps/storefront
//	    packages: [acme/helpers, acme/i18n]
//	  - dir: ./apps/admin
//	    vendor_dir: lib
//	    root: true
//	    files: ["/legacy/functions.php"]
//	options:
//	  continue_on_error: true
//	  concurrency: 4
//
// # Usage
//
//	loader := priority.NewLoader()
//	batch, err := loader.Load("projects.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrNoProjects: batch file has no projects defined
//   - ErrEmptyDir: project is missing the required dir field
//   - ErrInvalidFormat: file is not valid YAML/JSON
//   - ErrFileNotFound: batch file does not exist
//   - ErrUnsupportedExt: unsupported file extension
package priority

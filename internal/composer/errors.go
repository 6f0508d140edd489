package composer

import "errors"

var (
	// ErrInstalledNotFound indicates vendor/composer/installed.json is missing
	ErrInstalledNotFound = errors.New("installed.json not found (run composer install first)")

	// ErrPackageNotFound indicates a requested package is not installed
	ErrPackageNotFound = errors.New("package not installed")

	// ErrInvalidMetadata indicates composer.json or installed.json is not valid JSON
	ErrInvalidMetadata = errors.New("invalid composer metadata")
)

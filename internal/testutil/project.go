package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ComposerJSON is a root package that promotes acme/helpers through extra
const ComposerJSON = `{
    "name": "acme/app",
    "autoload": {
        "files": ["src/functions.php"]
    },
    "extra": {
        "autoload-priority": {
            "packages": ["acme/helpers"]
        }
    }
}`

// InstalledJSON lists the packages behind StaticManifest and FilesManifest
const InstalledJSON = `{
    "packages": [
        {
            "name": "symfony/polyfill-mbstring",
            "install-path": "../symfony/polyfill-mbstring",
            "autoload": {"files": ["bootstrap.php"]}
        },
        {
            "name": "laravel/framework",
            "install-path": "../laravel/framework",
            "autoload": {"files": ["src/Illuminate/Foundation/helpers.php"]}
        },
        {
            "name": "acme/helpers",
            "install-path": "../acme/helpers",
            "autoload": {"files": ["src/helpers.php"]}
        }
    ]
}`

// StaticManifest is an autoload_static.php with acme/helpers loaded last
const StaticManifest = `<?php

// autoload_static.php @generated by Composer

namespace Composer\Autoload;

class ComposerStaticInit0a1b2c3d4e5f
{
    public static $files = array (
        '0e6d7bf4a5811bfa5cf40c5ccd6fae6a' => __DIR__ . '/..' . '/symfony/polyfill-mbstring/bootstrap.php',
        '265b4faa2b3a9766332744949e83bf97' => __DIR__ . '/..' . '/laravel/framework/src/Illuminate/Foundation/helpers.php',
        'f2a8c5e1b0c14a9d8d1c1d3f6a2b7e90' => __DIR__ . '/..' . '/acme/helpers/src/helpers.php',
    );

    public static $classMap = array (
        'Composer\\InstalledVersions' => __DIR__ . '/..' . '/composer/InstalledVersions.php',
    );
}
`

// PromotedStaticManifest is StaticManifest after promoting acme/helpers
const PromotedStaticManifest = `<?php

// autoload_static.php @generated by Composer

namespace Composer\Autoload;

class ComposerStaticInit0a1b2c3d4e5f
{
    public static $files = array (
        'f2a8c5e1b0c14a9d8d1c1d3f6a2b7e90' => __DIR__ . '/..' . '/acme/helpers/src/helpers.php',
        '0e6d7bf4a5811bfa5cf40c5ccd6fae6a' => __DIR__ . '/..' . '/symfony/polyfill-mbstring/bootstrap.php',
        '265b4faa2b3a9766332744949e83bf97' => __DIR__ . '/..' . '/laravel/framework/src/Illuminate/Foundation/helpers.php',
    );

    public static $classMap = array (
        'Composer\\InstalledVersions' => __DIR__ . '/..' . '/composer/InstalledVersions.php',
    );
}
`

// FilesManifest is an autoload_files.php with acme/helpers loaded last
const FilesManifest = `<?php

// autoload_files.php @generated by Composer

$vendorDir = dirname(__DIR__);
$baseDir = dirname($vendorDir);

return array(
    '0e6d7bf4a5811bfa5cf40c5ccd6fae6a' => $vendorDir . '/symfony/polyfill-mbstring/bootstrap.php',
    '265b4faa2b3a9766332744949e83bf97' => $vendorDir . '/laravel/framework/src/Illuminate/Foundation/helpers.php',
    'f2a8c5e1b0c14a9d8d1c1d3f6a2b7e90' => $vendorDir . '/acme/helpers/src/helpers.php',
);
`

// PromotedFilesManifest is FilesManifest after promoting acme/helpers
const PromotedFilesManifest = `<?php

// autoload_files.php @generated by Composer

$vendorDir = dirname(__DIR__);
$baseDir = dirname($vendorDir);

return array(
    'f2a8c5e1b0c14a9d8d1c1d3f6a2b7e90' => $vendorDir . '/acme/helpers/src/helpers.php',
    '0e6d7bf4a5811bfa5cf40c5ccd6fae6a' => $vendorDir . '/symfony/polyfill-mbstring/bootstrap.php',
    '265b4faa2b3a9766332744949e83bf97' => $vendorDir . '/laravel/framework/src/Illuminate/Foundation/helpers.php',
);
`

// Project describes the files of a fixture project. Empty fields are not written.
type Project struct {
	ComposerJSON  string
	InstalledJSON string
	Static        string
	Files         string
}

// DefaultProject is a complete project whose manifests need promotion
func DefaultProject() Project {
	return Project{
		ComposerJSON:  ComposerJSON,
		InstalledJSON: InstalledJSON,
		Static:        StaticManifest,
		Files:         FilesManifest,
	}
}

// WriteProject lays p out under a new temp dir and returns the dir
func WriteProject(t *testing.T, p Project) string {
	t.Helper()

	dir := t.TempDir()
	composerDir := filepath.Join(dir, "vendor", "composer")
	require.NoError(t, os.MkdirAll(composerDir, 0755))

	write := func(path, content string) {
		if content == "" {
			return
		}
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write(filepath.Join(dir, "composer.json"), p.ComposerJSON)
	write(filepath.Join(composerDir, "installed.json"), p.InstalledJSON)
	write(filepath.Join(composerDir, "autoload_static.php"), p.Static)
	write(filepath.Join(composerDir, "autoload_files.php"), p.Files)

	return dir
}

// ReadFile returns the content of path or fails the test
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

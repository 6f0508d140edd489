// Package autoload reorders the always-load block of a Composer autoload
// manifest so that designated helper files are loaded first.
//
// # Block Format
//
// Composer writes the always-load files as a PHP array literal, one entry per
// line:
//
//	public static $files = array (
//	    '0e6d7bf4a5811bfa5cf40c5ccd6fae6a' => __DIR__ . '/..' . '/symfony/polyfill-mbstring/bootstrap.php',
//	    'f2a8c5e1b0c14a9d8d1c1d3f6a2b7e90' => __DIR__ . '/..' . '/acme/helpers/src/helpers.php',
//	);
//
// A Format names the markers that bound such a block. StaticFormat matches
// autoload_static.php and FilesFormat matches autoload_files.php.
//
// # Usage
//
//	block, err := autoload.Parse(text, autoload.StaticFormat)
//	if err != nil {
//	    return err // errors.Is(err, autoload.ErrFormat)
//	}
//	promoted := autoload.Reorder(block.Entries, autoload.PromotionSet{"/acme/helpers/src/helpers.php"})
//	text = autoload.Splice(text, block, autoload.Render(block, promoted))
//
// Everything in this package is pure: no I/O, no logging, no shared state.
// Callers own reading and writing the manifest.
package autoload

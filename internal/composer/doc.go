// Package composer reads the Composer metadata of a PHP project and turns the
// always-load files declared by selected packages into path fragments that
// identify their entries in the generated autoload manifests.
//
// Two files are read:
//   - composer.json in the project root (name, autoload.files, config.vendor-dir,
//     extra.autoload-priority.packages)
//   - <vendor-dir>/composer/installed.json (Composer 2 object form or the
//     Composer 1 top-level array)
package composer

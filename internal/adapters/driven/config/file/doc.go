// Package file provides a TOML-backed implementation of the
// driven.ConfigStore port. Settings live in a single config.toml under the
// mailwatch config directory; nested tables are flattened to dot-notation
// keys on load.
package file

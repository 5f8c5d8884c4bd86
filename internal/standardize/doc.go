// Package standardize brings a package's package.json in line with its
// resolved configuration. Engine.Run loads the manifest once, applies the
// license, scripts/wireit, and node engine merges in order, and writes the
// file at most once at the end.
package standardize

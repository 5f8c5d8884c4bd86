// Package pkgconfig resolves the target package.json configuration for one
// package: license, scripts, and wireit build-graph entries. The result is a
// fresh merge of an embedded baseline, profile overlays selected by what the
// package looks like on disk, and a local .devscriptsrc override file.
package pkgconfig

// Package manifest loads, edits, and writes a package's package.json.
//
// A Document keeps the file's raw JSON as the source of truth so that edits
// preserve the original key order, alongside a typed view of the fields the
// standardizer cares about (license, scripts, wireit, engines.node). Loaded
// documents are validated against an embedded JSON schema; shape violations
// surface as a *ParseError. Write persists only when something changed.
package manifest

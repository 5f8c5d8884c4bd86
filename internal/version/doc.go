// Package version compares release versions segment by segment. It only
// understands release cores (digits separated by dots); pre-release and build
// metadata are stripped by Core before comparison.
package version

// Package shell runs shell command strings through an embedded POSIX shell
// interpreter (mvdan.cc/sh), so commands behave the same on every platform
// and output can be redirected to arbitrary writers.
package shell

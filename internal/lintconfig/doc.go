// Package lintconfig generates the shared ESLint configuration file that
// packages check in. The file is owned by devscripts and carries a
// do-not-modify header.
package lintconfig

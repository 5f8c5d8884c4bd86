// Package workspace finds the package roots of a pnpm monorepo from the
// package globs in pnpm-workspace.yaml. Recursive `**` patterns and `!`
// exclusions are supported; anything under node_modules is ignored.
package workspace

// Package hooks bootstraps the shared husky git hooks for a repository
// clone. Commands are executed through an injected Runner so the procedure
// can be exercised without spawning real processes.
package hooks

// Package config manages user-level settings stored at ~/.devscripts/config.yaml
// and DEVSCRIPTS_* environment variables: the log level, the package manager
// used for hook commands, and the node engine packages are bumped to.
package config

package standardize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// MarkerFile is the project file probed before bumping the node engine.
const MarkerFile = "tsconfig.json"

// ProbeResult is the outcome of probing a package's marker file.
type ProbeResult int

const (
	// NotApplicable means the marker is absent or does not extend the shared config.
	NotApplicable ProbeResult = iota
	// Applicable means the marker extends the shared config.
	Applicable
	// ReadError means the marker exists but could not be read.
	ReadError
)

func (r ProbeResult) String() string {
	switch r {
	case Applicable:
		return "applicable"
	case ReadError:
		return "read-error"
	default:
		return "not-applicable"
	}
}

// ProbeMarker reports whether <packageRoot>/tsconfig.json extends the shared
// config package. The error is non-nil only for ReadError.
func ProbeMarker(packageRoot, sharedConfig string) (ProbeResult, error) {
	path := filepath.Join(packageRoot, MarkerFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NotApplicable, nil
	}
	if err != nil {
		return ReadError, fmt.Errorf("reading %s: %w", path, err)
	}

	if extendsPattern(sharedConfig).Match(data) {
		return Applicable, nil
	}
	return NotApplicable, nil
}

// extendsPattern matches an "extends" entry naming sharedConfig.
func extendsPattern(sharedConfig string) *regexp.Regexp {
	return regexp.MustCompile(`"extends"\s*:\s*".*` + regexp.QuoteMeta(sharedConfig))
}

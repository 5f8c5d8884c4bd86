package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// LessThan reports whether release core a sorts strictly before b.
// Missing or non-numeric segments count as zero, so "1.2" equals "1.2.0".
// Callers strip range operators such as ">=" before calling.
func LessThan(a, b string) bool {
	as := segments(a)
	bs := segments(b)

	n := max(len(as), len(bs))
	for i := 0; i < n; i++ {
		x, y := at(as, i), at(bs, i)
		if x != y {
			return x < y
		}
	}
	return false
}

// Core returns the release core of v, dropping any pre-release or build
// suffix. Strings that semver accepts are normalized to major.minor.patch.
func Core(v string) string {
	v = strings.TrimSpace(v)
	if sv, err := semver.NewVersion(v); err == nil {
		return fmt.Sprintf("%d.%d.%d", sv.Major(), sv.Minor(), sv.Patch())
	}
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	return v
}

func segments(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, ".")
}

func at(segs []string, i int) uint64 {
	if i >= len(segs) {
		return 0
	}
	n, err := strconv.ParseUint(segs[i], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

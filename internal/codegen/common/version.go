package common

import (
	"fmt"
	"strings"
)

// Version is the shmgen release, stamped with
// -ldflags "-X github.com/intfrr/jankdrone/internal/codegen/common.Version=x.y.z".
var Version = ""

// GetVersion returns the string printed by shmgen --version.
func GetVersion() (string, error) {
	if Version == "" {
		return "0.0.1-dev", nil
	}
	version := strings.TrimPrefix(Version, "v")
	if base, _, _ := strings.Cut(version, "-"); !strings.Contains(base, ".") {
		return "", fmt.Errorf("invalid version %q (expected x.y.z)", Version)
	}
	return version, nil
}

package errors

import (
	"strconv"
	"strings"
)

// Scene descriptions and rendered images carry fixed file extensions; the
// CLI rejects mismatched paths before any file I/O happens.
const (
	SceneExt  = ".yaml"
	OutputExt = ".png"
)

// ValidateScenePath checks that a scene description path is usable:
// non-empty and ending in the scene-file extension.
func ValidateScenePath(path string) error {
	if path == "" {
		return New(ErrCodeArgument, "scene path cannot be empty")
	}
	if !strings.HasSuffix(path, SceneExt) {
		return New(ErrCodeArgument, "scene path %q must end in %s", path, SceneExt)
	}
	return nil
}

// ValidateOutputPath checks that a render output path ends in the
// image-file extension.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeArgument, "output path cannot be empty")
	}
	if !strings.HasSuffix(path, OutputExt) {
		return New(ErrCodeArgument, "output path %q must end in %s", path, OutputExt)
	}
	return nil
}

// ParseUint parses a numeric CLI value, reporting which argument carried
// the bad value.
func ParseUint(arg, raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, New(ErrCodeArgument, "invalid value %q for argument %q", raw, arg)
	}
	return uint(v), nil
}

// ValidatePositive checks that a numeric argument is at least one.
func ValidatePositive(arg string, value uint) error {
	if value == 0 {
		return New(ErrCodeArgument, "argument %q must be at least 1", arg)
	}
	return nil
}

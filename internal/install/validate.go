package install

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/smy-101/skillstudio/internal/skillerr"
)

// ValidateName 校验安装名称
//
// The name becomes a single entry of the installed-skills directory, so it
// must not contain separators or resolve outside of it.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return skillerr.Parse("skill name cannot be empty", nil)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.IsAbs(name) {
		return skillerr.Parse(fmt.Sprintf("invalid skill name %q", name), nil)
	}
	return nil
}

// validateRelPath checks that a repository-relative path stays inside the
// repository.
func validateRelPath(field, rel string) error {
	if rel == "" {
		return skillerr.Parse(fmt.Sprintf("%s cannot be empty", field), nil)
	}
	if filepath.IsAbs(rel) {
		return skillerr.Parse(fmt.Sprintf("%s must be relative: %s", field, rel), nil)
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return skillerr.Parse(fmt.Sprintf("path traversal detected in %s: %s", field, rel), nil)
	}
	return nil
}

// within reports whether target is base or below it.
func within(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

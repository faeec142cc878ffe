package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ShorthandHome returns the same path but replaces the first part of the
// path with the home shorthand ("~") if the path is inside the home directory.
//
// Example:
//
//   Input:  "/home/jane/.config/iver-wharf/wharf-apps/datatables.yml"
//   Output: "~/.config/iver-wharf/wharf-apps/datatables.yml"
func ShorthandHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return useShorthandHomePrefix(path, home)
}

func useShorthandHomePrefix(path, home string) string {
	if home == "" || !strings.HasPrefix(path, home) {
		return path
	}
	rest := strings.TrimPrefix(path, home)
	if rest != "" && !strings.HasPrefix(rest, string(filepath.Separator)) {
		return path
	}
	return "~" + rest
}

// ExpandHome is the inverse of ShorthandHome, replacing a leading "~" with
// the home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return expandHomePrefix(path, home), nil
}

func expandHomePrefix(path, home string) string {
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

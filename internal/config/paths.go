package config

import (
	"os"
	"path/filepath"
	"strings"
)

// expandPath resolves a leading ~ and $VAR references in a configured
// path, so plan_file = "~/plans/fall.json" works from any of the config
// sources. Values that cannot be resolved are returned as typed.
func expandPath(p string) string {
	if p == "" {
		return ""
	}

	p = os.ExpandEnv(p)

	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}

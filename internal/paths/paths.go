package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// ConfigDir returns ~/.devprofile.
func ConfigDir() string {
	return filepath.Join(home(), ".devprofile")
}

// ConfigFile returns ~/.devprofile/config.yaml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Package configpaths resolves where hidplus looks for configuration files.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "hidplus"

// configBases are the file names (without extension) probed in every
// directory, in priority order.
var configBases = []string{"config", "client", "monitor"}

// DefaultConfigDir returns the platform-specific configuration directory.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, appName), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", appName), nil
		}
		return "", errors.New("HOME not set")
	}
}

// EnsureDir creates the parent directory of filePath.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// Extension returns the file extension for a config format.
func Extension(format string) string {
	switch format {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return "json"
	}
}

// ConfigCandidatePaths lists config files per format, highest priority
// first. A user supplied path comes first and is routed by its extension;
// then the working directory, the user config dir and /etc/hidplus.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
		}
	}

	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	if runtime.GOOS != "windows" {
		dirs = append(dirs, filepath.Join("/etc", appName))
	}

	for _, dir := range dirs {
		for _, base := range configBases {
			p := filepath.Join(dir, base)
			jsonPaths = append(jsonPaths, p+".json")
			yamlPaths = append(yamlPaths, p+".yaml", p+".yml")
			tomlPaths = append(tomlPaths, p+".toml")
		}
	}
	return jsonPaths, yamlPaths, tomlPaths
}

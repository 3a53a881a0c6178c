// Package environment resolves configuration that must come from the
// process environment, such as the location of the mesh test-data tree.
package environment

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
)

// GetRequired returns the value of an environment variable that has no
// sensible default. An unset or empty variable is a setup error the caller
// should treat as fatal.
func GetRequired(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("required environment variable %s is not set", name)
	}
	return value, nil
}

// GetRequiredPath resolves a required environment variable holding a
// filesystem path, expanding a leading ~ to the user's home directory.
func GetRequiredPath(name string) (string, error) {
	value, err := GetRequired(name)
	if err != nil {
		return "", err
	}
	path, err := homedir.Expand(value)
	if err != nil {
		return "", fmt.Errorf("cannot expand %s=%q: %v", name, value, err)
	}
	return path, nil
}

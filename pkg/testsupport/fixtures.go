package testsupport

import (
	"os"
	"path/filepath"
)

func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// CopyFixture copies the fixture at path into dir and returns the new path.
func CopyFixture(path, dir string) (string, error) {
	data, err := LoadFixture(path)
	if err != nil {
		return "", err
	}
	target := filepath.Join(dir, filepath.Base(path))
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", err
	}
	return target, nil
}

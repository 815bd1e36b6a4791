package config

import (
	"log"
	"os"
	"path/filepath"
)

const writeProbeFileName = ".write_test"

// ResolveDataPath returns the first candidate that accepts a write probe. When
// none does (network share offline) it falls back to localPath, or to a
// folder under the user's home when localPath is empty.
func ResolveDataPath(candidates []string, localPath string) string {
	for _, candidate := range candidates {
		if err := probeWritable(candidate); err != nil {
			log.Printf("Data path %s is not accessible: %v", candidate, err)
			continue
		}
		return candidate
	}

	if localPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		localPath = filepath.Join(home, ".sisregip")
	}
	if err := os.MkdirAll(localPath, 0o755); err != nil {
		log.Printf("Failed to create local data path %s: %v", localPath, err)
	}
	if len(candidates) > 0 {
		log.Printf("Using local data path %s", localPath)
	}
	return localPath
}

func probeWritable(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(path, writeProbeFileName)
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}

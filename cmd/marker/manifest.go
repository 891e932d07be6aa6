package main

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"marker/internal/project"
	"marker/internal/toolchain"
)

// loadConfig resolves the manifest path, falling back to an upward
// search from the working directory, and decodes it.
func loadConfig(manifestFlag string) (*project.Config, error) {
	path := manifestFlag
	if path == "" {
		found, ok, err := project.FindManifest(".")
		if err != nil {
			return nil, toolchain.Wrap(toolchain.BadConfiguration, err, "locating "+project.ManifestName)
		}
		if !ok {
			return nil, toolchain.Exitf(toolchain.BadConfiguration,
				"no %s found in this directory or any parent", project.ManifestName)
		}
		path = found
	}
	return project.Load(path)
}

// findSources collects the .rs files under root, skipping dot
// directories and the build space.
func findSources(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "target") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".rs") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, toolchain.Wrap(toolchain.BadConfiguration, err, "scanning for sources")
	}
	sort.Strings(files)
	return files, nil
}

package reference

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadCatalog reads every YAML directory from dir. The directory name comes
// from the file's `name` field, falling back to the file name.
func LoadCatalog(dir string) (map[string]Directory, error) {
	result := make(map[string]Directory)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		var d Directory
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		if d.Name == "" {
			d.Name = strings.TrimSuffix(name, filepath.Ext(name))
		}
		result[d.Name] = d
	}
	return result, nil
}

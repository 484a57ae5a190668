package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
)

// Sink saves an exported file and reports where it went.
type Sink interface {
	Save(f File) (string, error)
}

// DiskSink writes exports into a downloads directory.
type DiskSink struct {
	dir string
	d   *diskv.Diskv
}

// NewDiskSink returns a sink rooted at dir. A leading ~ is expanded.
func NewDiskSink(dir string) (*DiskSink, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf("expand downloads dir %q: %w", dir, err)
	}
	if err := os.MkdirAll(expanded, 0o755); err != nil {
		return nil, fmt.Errorf("create downloads dir: %w", err)
	}
	return &DiskSink{
		dir: expanded,
		d: diskv.New(diskv.Options{
			BasePath:     expanded,
			Transform:    flatTransform,
			FilePerm:     0o644,
			CacheSizeMax: 0,
		}),
	}, nil
}

// Dir is the resolved downloads directory.
func (s *DiskSink) Dir() string {
	return s.dir
}

// Save writes f, replacing any earlier export of the same name.
func (s *DiskSink) Save(f File) (string, error) {
	key := sanitize(f.Name)
	if err := s.d.Write(key, f.Data); err != nil {
		return "", fmt.Errorf("save %s: %w", key, err)
	}
	return filepath.Join(s.dir, key), nil
}

func flatTransform(string) []string {
	return []string{}
}

var unsafeName = strings.NewReplacer("/", "_", "\\", "_", "..", "_")

func sanitize(name string) string {
	name = unsafeName.Replace(strings.TrimSpace(name))
	if name == "" {
		return "forecast.csv"
	}
	return name
}

package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inovacc/katasync/internal/model"
)

// LoadSnapshot reads a captured page from a JSON envelope
// {"url", "html", "event", "captured_at"}.
func LoadSnapshot(path string) (*model.Tab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	var tab model.Tab
	if err := json.Unmarshal(data, &tab); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	if tab.ID == "" {
		tab.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &tab, nil
}

// LoadHTML builds a tab from a saved HTML file and the page URL.
func LoadHTML(path, pageURL string) (*model.Tab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %s: %w", path, err)
	}

	return &model.Tab{
		ID:         filepath.Base(path),
		URL:        pageURL,
		HTML:       string(data),
		CapturedAt: time.Now(),
	}, nil
}

// SnapshotDir treats the newest snapshot in Dir as the active tab.
type SnapshotDir struct {
	Dir string
}

// ActiveTab returns the most recently modified *.json snapshot, or nil, nil
// when the directory holds none.
func (s SnapshotDir) ActiveTab(_ context.Context) (*model.Tab, error) {
	matches, err := filepath.Glob(filepath.Join(s.Dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var (
		newest  string
		newestT time.Time
	)

	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}

		if newest == "" || info.ModTime().After(newestT) {
			newest, newestT = m, info.ModTime()
		}
	}

	if newest == "" {
		return nil, nil
	}

	return LoadSnapshot(newest)
}

// StaticTab always resolves to the same tab.
type StaticTab struct {
	Tab *model.Tab
}

func (s StaticTab) ActiveTab(context.Context) (*model.Tab, error) {
	return s.Tab, nil
}

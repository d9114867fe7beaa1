package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"exchange-map-service/internal/domain/model"
	"exchange-map-service/pkg/logger"
)

const DefaultPath = "exchanges.json"

// FileDirectory reads exchange records from a JSON file and re-reads it only
// when its modification time changes.
type FileDirectory struct {
	path  string
	log   *logger.Logger
	mutex sync.Mutex

	records []model.ExchangeRecord
	mtime   time.Time
	loaded  bool
}

func NewFileDirectory(path string, log *logger.Logger) *FileDirectory {
	if path == "" {
		path = DefaultPath
	}
	return &FileDirectory{
		path: path,
		log:  log,
	}
}

// Load never fails. A missing or malformed file yields an empty directory and
// forces a re-read on the next call.
func (d *FileDirectory) Load(ctx context.Context) []model.ExchangeRecord {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	records, err := d.reload()
	if err != nil {
		d.log.Warn("Failed to load exchange directory", "path", d.path, "error", err)
		d.records = nil
		d.loaded = false
		d.mtime = time.Time{}
		return []model.ExchangeRecord{}
	}
	return records
}

func (d *FileDirectory) reload() ([]model.ExchangeRecord, error) {
	info, err := os.Stat(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if d.loaded && info.ModTime().Equal(d.mtime) {
		return d.records, nil
	}

	data, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var records []model.ExchangeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}
	if records == nil {
		records = []model.ExchangeRecord{}
	}

	d.records = records
	d.mtime = info.ModTime()
	d.loaded = true
	d.log.Info("Exchange directory loaded", "path", d.path, "count", len(records))

	return records, nil
}

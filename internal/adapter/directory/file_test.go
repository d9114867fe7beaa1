package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exchange-map-service/pkg/logger"
)

func writeFile(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestFileDirectory_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exchanges.json")
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	writeFile(t, path, `[{"name":"Kantor 1913","lat":52.2297,"lng":21.0122,"url":"https://kantor1913.pl"},{"name":"Kassir"}]`, base)

	d := NewFileDirectory(path, logger.Nop())
	records := d.Load(context.Background())

	require.Len(t, records, 2)
	assert.Equal(t, "Kantor 1913", records[0].Name)
	require.NotNil(t, records[0].Lat)
	assert.InDelta(t, 52.2297, *records[0].Lat, 1e-9)
	require.NotNil(t, records[0].URL)
	assert.Equal(t, "https://kantor1913.pl", *records[0].URL)
	assert.Nil(t, records[1].Lat)
	assert.Nil(t, records[1].URL)
}

func TestFileDirectory_CachesByModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exchanges.json")
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	writeFile(t, path, `[{"name":"A"}]`, base)

	d := NewFileDirectory(path, logger.Nop())
	require.Len(t, d.Load(context.Background()), 1)

	// Same mtime: content change is not picked up.
	writeFile(t, path, `[{"name":"A"},{"name":"B"}]`, base)
	assert.Len(t, d.Load(context.Background()), 1)

	writeFile(t, path, `[{"name":"A"},{"name":"B"}]`, base.Add(time.Second))
	assert.Len(t, d.Load(context.Background()), 2)
}

func TestFileDirectory_Failures(t *testing.T) {
	testCases := []struct {
		name    string
		content *string
	}{
		{name: "missing file"},
		{name: "malformed json", content: strPtr(`[{"name":`)},
		{name: "not an array", content: strPtr(`{"name":"A"}`)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "exchanges.json")
			if tc.content != nil {
				writeFile(t, path, *tc.content, time.Now())
			}

			d := NewFileDirectory(path, logger.Nop())
			records := d.Load(context.Background())

			assert.NotNil(t, records)
			assert.Empty(t, records)
		})
	}
}

func TestFileDirectory_RecoversAfterFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exchanges.json")
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	writeFile(t, path, `[{"name":"A"}]`, base)

	d := NewFileDirectory(path, logger.Nop())
	require.Len(t, d.Load(context.Background()), 1)

	writeFile(t, path, `broken`, base.Add(time.Second))
	assert.Empty(t, d.Load(context.Background()))

	// Cache was reset, so restoring the old mtime still triggers a read.
	writeFile(t, path, `[{"name":"A"},{"name":"B"}]`, base)
	assert.Len(t, d.Load(context.Background()), 2)
}

func TestNewFileDirectory_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewFileDirectory("", logger.Nop()).path)
}

func strPtr(s string) *string {
	return &s
}

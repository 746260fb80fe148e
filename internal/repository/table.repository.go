package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"foxvalley/internal/domain"
	"foxvalley/internal/logger"

	"github.com/gocarina/gocsv"
)

// TableRepository loads csv exports into raw tables
type TableRepository interface {
	Load(ctx context.Context, path string) (*domain.Table, error)
}

type tableCacheKey struct {
	path    string
	modTime time.Time
	size    int64
}

// TableCache memoizes parsed files by (path, mtime, size). it is passed in
// explicitly so callers decide its lifetime.
type TableCache struct {
	mu      sync.RWMutex
	entries map[string]tableCacheEntry
	hits    int
}

type tableCacheEntry struct {
	key   tableCacheKey
	table domain.Table
}

func NewTableCache() *TableCache {
	return &TableCache{
		entries: map[string]tableCacheEntry{},
	}
}

func (c *TableCache) get(key tableCacheKey) (domain.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key.path]
	if !ok || entry.key != key {
		return domain.Table{}, false
	}
	c.hits++
	return entry.table.DeepCopy(), true
}

func (c *TableCache) set(key tableCacheKey, t domain.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key.path] = tableCacheEntry{
		key:   key,
		table: t.DeepCopy(),
	}
}

func (c *TableCache) Hits() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits
}

type tableRepositoryHandler struct {
	Cache *TableCache
}

func NewTableRepository(cache *TableCache) TableRepository {
	return tableRepositoryHandler{Cache: cache}
}

func (h tableRepositoryHandler) Load(ctx context.Context, path string) (*domain.Table, error) {
	log := logger.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	key := tableCacheKey{
		path:    path,
		modTime: info.ModTime(),
		size:    info.Size(),
	}
	if h.Cache != nil {
		if t, ok := h.Cache.get(key); ok {
			log.Debugw("table cache hit", "path", path)
			return &t, nil
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	t, err := ParseTable(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if t.SkippedRows > 0 {
		log.Infow("skipped non-data rows", "path", path, "count", t.SkippedRows)
	}

	if h.Cache != nil {
		h.Cache.set(key, *t)
	}

	return t, nil
}

// headerLineIndex finds the real header in exports that carry disclaimer text
// above it. the first line with at least 3 commas wins, otherwise the first
// non-blank line.
func headerLineIndex(lines []string) int {
	firstNonBlank := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if firstNonBlank < 0 {
			firstNonBlank = i
		}
		if strings.Count(line, ",") >= 3 {
			return i
		}
	}
	return firstNonBlank
}

// ParseTable reads a csv export from memory
func ParseTable(raw []byte) (*domain.Table, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	headerIdx := headerLineIndex(lines)
	if headerIdx < 0 {
		return &domain.Table{}, nil
	}

	reader := gocsv.LazyCSVReader(strings.NewReader(strings.Join(lines[headerIdx:], "\n")))
	if r, ok := reader.(*csv.Reader); ok {
		// footers and partial rows have different widths
		r.FieldsPerRecord = -1
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &domain.Table{}, nil
	}

	out := &domain.Table{
		Columns: trimAll(records[0]),
		Rows:    [][]string{},
	}
	width := len(out.Columns)
	for _, record := range records[1:] {
		row := trimAll(record)
		if isBlank(row) || (len(row) == 1 && width > 1) {
			out.SkippedRows++
			continue
		}
		for len(row) < width {
			row = append(row, "")
		}
		out.Rows = append(out.Rows, row[:width])
	}

	return out, nil
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

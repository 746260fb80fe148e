package repository

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"foxvalley/internal/domain"
	"foxvalley/internal/logger"
	"foxvalley/internal/util"
)

// SnapshotRepository picks dated csv exports out of a directory
type SnapshotRepository interface {
	// Latest returns the matching file with the largest date token, or the most
	// recently modified match when no file carries a date
	Latest(ctx context.Context, keywords []string) domain.SnapshotFile
	// Previous returns the latest dated match strictly before date
	Previous(ctx context.Context, keywords []string, date string) domain.SnapshotFile
	// List returns every matching file, oldest first
	List(ctx context.Context, keywords []string) []domain.SnapshotFile
	Dir() string
}

type snapshotRepositoryHandler struct {
	dir string
}

func NewSnapshotRepository(dir string) SnapshotRepository {
	return snapshotRepositoryHandler{dir: dir}
}

func (h snapshotRepositoryHandler) Dir() string {
	return h.dir
}

// normalizeKeyword makes "Growth 1", "growth_1" and "Growth1" equivalent
func normalizeKeyword(s string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(s))
}

func MatchesKeyword(name string, keywords []string) bool {
	n := normalizeKeyword(name)
	for _, k := range keywords {
		k = normalizeKeyword(k)
		if k != "" && strings.Contains(n, k) {
			return true
		}
	}
	return false
}

func (h snapshotRepositoryHandler) List(ctx context.Context, keywords []string) []domain.SnapshotFile {
	log := logger.FromContext(ctx)

	entries, err := os.ReadDir(h.dir)
	if err != nil {
		log.Warnw("could not read snapshot directory", "dir", h.dir, "error", err)
		return []domain.SnapshotFile{}
	}

	out := []domain.SnapshotFile{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		if !MatchesKeyword(e.Name(), keywords) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			log.Warnw("could not stat snapshot", "name", e.Name(), "error", err)
			continue
		}
		token, _ := util.DateTokenFromName(e.Name())
		out = append(out, domain.SnapshotFile{
			Found:     true,
			Path:      filepath.Join(h.dir, e.Name()),
			Name:      e.Name(),
			DateToken: token,
			ModTime:   info.ModTime(),
		})
	}

	sortSnapshots(out)
	return out
}

// sortSnapshots orders by date token, then mtime, then name. undated files
// sort before dated ones.
func sortSnapshots(files []domain.SnapshotFile) {
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if a.DateToken != b.DateToken {
			return a.DateToken < b.DateToken
		}
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.Before(b.ModTime)
		}
		return a.Name < b.Name
	})
}

func (h snapshotRepositoryHandler) Latest(ctx context.Context, keywords []string) domain.SnapshotFile {
	files := h.List(ctx, keywords)

	var latest *domain.SnapshotFile
	for i := range files {
		if files[i].DateToken != "" {
			latest = &files[i]
		}
	}
	if latest != nil {
		return *latest
	}

	// nothing dated, fall back to modification time
	var newest *domain.SnapshotFile
	for i := range files {
		f := &files[i]
		if newest == nil || f.ModTime.After(newest.ModTime) || (f.ModTime.Equal(newest.ModTime) && f.Name > newest.Name) {
			newest = f
		}
	}
	if newest == nil {
		return domain.SnapshotFile{Found: false}
	}
	return *newest
}

func (h snapshotRepositoryHandler) Previous(ctx context.Context, keywords []string, date string) domain.SnapshotFile {
	if date == "" {
		return domain.SnapshotFile{Found: false}
	}
	files := h.List(ctx, keywords)

	out := domain.SnapshotFile{Found: false}
	for _, f := range files {
		if f.DateToken != "" && f.DateToken < date {
			out = f
		}
	}
	return out
}

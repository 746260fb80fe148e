package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"foxvalley/internal/domain"
	"foxvalley/internal/logger"
)

const archivePrefix = "archive_"

// ArchiveRepository moves superseded exports out of the data directory
type ArchiveRepository interface {
	Archive(ctx context.Context, files []domain.SnapshotFile) ([]string, error)
	List(ctx context.Context, keywords []string) []domain.SnapshotFile
}

type archiveRepositoryHandler struct {
	dir       string
	snapshots SnapshotRepository
}

func NewArchiveRepository(dir string) ArchiveRepository {
	return archiveRepositoryHandler{
		dir:       dir,
		snapshots: NewSnapshotRepository(dir),
	}
}

func ArchivedName(name string) string {
	if strings.HasPrefix(name, archivePrefix) {
		return name
	}
	return archivePrefix + name
}

func (h archiveRepositoryHandler) Archive(ctx context.Context, files []domain.SnapshotFile) ([]string, error) {
	log := logger.FromContext(ctx)
	if len(files) == 0 {
		return []string{}, nil
	}

	err := os.MkdirAll(h.dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive dir %s: %w", h.dir, err)
	}

	moved := []string{}
	for _, f := range files {
		if !f.Found {
			continue
		}
		dest, err := h.destination(f.Name)
		if err != nil {
			return moved, fmt.Errorf("failed to archive %s: %w", f.Name, err)
		}
		if filepath.Base(dest) != ArchivedName(f.Name) {
			log.Warnw("archive name taken, keeping both copies", "name", f.Name, "to", dest)
		}
		err = os.Rename(f.Path, dest)
		if err != nil {
			return moved, fmt.Errorf("failed to archive %s: %w", f.Name, err)
		}
		log.Infow("archived snapshot", "from", f.Path, "to", dest)
		moved = append(moved, dest)
	}

	return moved, nil
}

// destination returns the archive path for name. an existing archived copy
// is never overwritten; later copies get a _2, _3, ... suffix.
func (h archiveRepositoryHandler) destination(name string) (string, error) {
	archived := ArchivedName(name)
	ext := filepath.Ext(archived)
	stem := strings.TrimSuffix(archived, ext)

	candidate := archived
	for n := 2; ; n++ {
		dest := filepath.Join(h.dir, candidate)
		_, err := os.Stat(dest)
		if errors.Is(err, os.ErrNotExist) {
			return dest, nil
		} else if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, n, ext)
	}
}

func (h archiveRepositoryHandler) List(ctx context.Context, keywords []string) []domain.SnapshotFile {
	return h.snapshots.List(ctx, keywords)
}

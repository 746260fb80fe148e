package repository

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"foxvalley/internal/logger"
)

type BundleFile struct {
	Name string
	// exactly one of Path or Content is used
	Path    string
	Content []byte
}

// ReportRepository owns the generated artifacts: dated briefs and zip bundles
type ReportRepository interface {
	WriteBrief(ctx context.Context, date string, content string) (string, error)
	ReadBrief(ctx context.Context, date string) (string, bool, error)
	WriteBundle(ctx context.Context, date string, files []BundleFile) (string, error)
}

type reportRepositoryHandler struct {
	dir string
}

func NewReportRepository(dir string) ReportRepository {
	return reportRepositoryHandler{dir: dir}
}

func BriefName(date string) string {
	return fmt.Sprintf("brief_%s.md", date)
}

func BundleName(date string) string {
	return fmt.Sprintf("bundle_%s.zip", date)
}

func (h reportRepositoryHandler) WriteBrief(ctx context.Context, date string, content string) (string, error) {
	err := os.MkdirAll(h.dir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create report dir %s: %w", h.dir, err)
	}

	path := filepath.Join(h.dir, BriefName(date))
	err = os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		return "", fmt.Errorf("failed to write brief: %w", err)
	}
	logger.FromContext(ctx).Infow("wrote brief", "path", path)

	return path, nil
}

func (h reportRepositoryHandler) ReadBrief(ctx context.Context, date string) (string, bool, error) {
	b, err := os.ReadFile(filepath.Join(h.dir, BriefName(date)))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("failed to read brief: %w", err)
	}
	return string(b), true, nil
}

func (h reportRepositoryHandler) WriteBundle(ctx context.Context, date string, files []BundleFile) (string, error) {
	err := os.MkdirAll(h.dir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create report dir %s: %w", h.dir, err)
	}

	path := filepath.Join(h.dir, BundleName(date))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create bundle: %w", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, bf := range files {
		err = addToZip(w, bf)
		if err != nil {
			w.Close()
			return "", fmt.Errorf("failed to add %s to bundle: %w", bf.Name, err)
		}
	}
	err = w.Close()
	if err != nil {
		return "", fmt.Errorf("failed to finalize bundle: %w", err)
	}
	logger.FromContext(ctx).Infow("wrote bundle", "path", path, "numFiles", len(files))

	return path, nil
}

func addToZip(w *zip.Writer, bf BundleFile) error {
	dst, err := w.Create(bf.Name)
	if err != nil {
		return err
	}
	if bf.Path == "" {
		_, err = dst.Write(bf.Content)
		return err
	}

	src, err := os.Open(bf.Path)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(dst, src)
	return err
}

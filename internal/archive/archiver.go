// Package archive turns the build output directory into a single zip file
// whose entry paths are relative to the output directory itself.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jgivc/uploader/internal/common"
	"github.com/jgivc/uploader/internal/entity"
	"github.com/spf13/afero"
)

const FileName = "output.zip"

type Archiver struct {
	fs  afero.Fs
	log *slog.Logger
}

func NewArchiver(log *slog.Logger) *Archiver {
	return NewArchiverWithFS(afero.NewOsFs(), log)
}

func NewArchiverWithFS(fs afero.Fs, log *slog.Logger) *Archiver {
	return &Archiver{
		fs:  fs,
		log: log.With(slog.String("item", "Archiver")),
	}
}

// Create zips the contents of root/dir into root/output.zip. Entry paths
// use forward slashes and never carry the output directory name as a
// prefix: root/build/index.html is stored as index.html.
func (a *Archiver) Create(root, dir string) (*entity.ArchiveInfo, error) {
	src := filepath.Join(root, dir)

	ok, err := afero.DirExists(a.fs, src)
	if err != nil {
		return nil, fmt.Errorf("cannot stat %s: %w", src, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrOutputDirNotFound, src)
	}

	outPath := filepath.Join(root, FileName)
	out, err := a.fs.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("cannot create archive file: %w", err)
	}

	info := &entity.ArchiveInfo{Path: outPath}
	zw := zip.NewWriter(out)
	prefix := filepath.ToSlash(dir) + "/"

	walkErr := afero.Walk(a.fs, src, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("cannot relativize %s: %w", path, err)
		}
		name := strings.TrimPrefix(filepath.ToSlash(rel), prefix)

		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("cannot add %s to archive: %w", name, err)
		}

		f, err := a.fs.Open(path)
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", path, err)
		}
		defer f.Close()

		n, err := io.Copy(w, f)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}

		info.FileCount++
		info.Bytes += n

		return nil
	})

	if walkErr != nil {
		zw.Close()
		out.Close()

		return nil, walkErr
	}

	if err := zw.Close(); err != nil {
		out.Close()

		return nil, fmt.Errorf("cannot finish archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("cannot finish archive: %w", err)
	}

	a.log.Debug("Archive created",
		slog.String("path", outPath), slog.Int("files", info.FileCount), slog.Int64("bytes", info.Bytes))

	return info, nil
}

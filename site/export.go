package site

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"stock-pulse/apperror"
)

// Export writes the whole site under dir as static files. Pages are written
// as <path>/index.html so they resolve without an extension.
func (s *Site) Export(dir string) error {
	start := time.Now()
	files := 0

	write := func(rel string, fn func(io.Writer) error) error {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return apperror.NewCustomError(apperror.ErrExport, "create directory for "+rel, err)
		}
		f, err := os.Create(path)
		if err != nil {
			return apperror.NewCustomError(apperror.ErrExport, "create "+rel, err)
		}
		bw := bufio.NewWriter(f)
		if err := fn(bw); err != nil {
			f.Close()
			return apperror.NewCustomError(apperror.ErrExport, "write "+rel, err)
		}
		if err := bw.Flush(); err != nil {
			f.Close()
			return apperror.NewCustomError(apperror.ErrExport, "flush "+rel, err)
		}
		files++
		return f.Close()
	}

	if err := write("index.html", s.RenderHome); err != nil {
		return err
	}
	for _, st := range s.catalog.Stocks() {
		slug := st.Slug
		err := write("stocks/"+slug+"/index.html", func(w io.Writer) error {
			_, err := s.RenderStock(w, slug)
			return err
		})
		if err != nil {
			return err
		}
	}
	for _, sec := range s.catalog.Sectors() {
		slug := sec.Slug
		err := write("sectors/"+slug+"/index.html", func(w io.Writer) error {
			_, err := s.RenderSector(w, slug)
			return err
		})
		if err != nil {
			return err
		}
	}
	if err := write("404.html", func(w io.Writer) error {
		return s.RenderNotFound(w, pageNotFoundTitle)
	}); err != nil {
		return err
	}
	if err := write("sitemap.xml", func(w io.Writer) error {
		return s.Sitemap(w, time.Now())
	}); err != nil {
		return err
	}
	if err := write("robots.txt", s.Robots); err != nil {
		return err
	}
	if err := write("search.json", s.SearchIndex); err != nil {
		return err
	}

	static := Static()
	err := fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		return write("static/"+path, func(w io.Writer) error {
			f, err := static.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = io.Copy(w, f)
			return err
		})
	})
	if err != nil {
		return err
	}

	s.logger.WithField("dir", dir).
		WithField("files", files).
		WithField("duration", time.Since(start).String()).
		Info("static site exported")
	return nil
}

package site

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

// Register mounts the page routes on mux.
func (s *Site) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.serveHome)
	mux.HandleFunc("GET /stocks/{slug}", s.serveStock)
	mux.HandleFunc("GET /sectors/{slug}", s.serveSector)
	mux.HandleFunc("GET /sitemap.xml", s.serveText("application/xml; charset=utf-8", func(w io.Writer) error {
		return s.Sitemap(w, time.Now())
	}))
	mux.HandleFunc("GET /robots.txt", s.serveText("text/plain; charset=utf-8", s.Robots))
	mux.HandleFunc("GET /search.json", s.serveText("application/json", s.SearchIndex))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(Static())))
	mux.HandleFunc("/", s.serveNotFound)
}

func (s *Site) serveHome(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusOK, s.RenderHome)
}

func (s *Site) serveStock(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	found, err := s.RenderStock(&buf, r.PathValue("slug"))
	s.finish(w, &buf, found, err, stockNotFoundTitle)
}

func (s *Site) serveSector(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	found, err := s.RenderSector(&buf, r.PathValue("slug"))
	s.finish(w, &buf, found, err, sectorNotFoundTitle)
}

func (s *Site) serveNotFound(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusNotFound, func(w io.Writer) error {
		return s.RenderNotFound(w, pageNotFoundTitle)
	})
}

func (s *Site) finish(w http.ResponseWriter, buf *bytes.Buffer, found bool, err error, missing string) {
	switch {
	case err != nil:
		s.fail(w, err)
	case !found:
		s.writePage(w, http.StatusNotFound, func(w io.Writer) error {
			return s.RenderNotFound(w, missing)
		})
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		buf.WriteTo(w)
	}
}

func (s *Site) writePage(w http.ResponseWriter, status int, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Site) serveText(contentType string, fn func(io.Writer) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := fn(&buf); err != nil {
			s.fail(w, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		buf.WriteTo(w)
	}
}

func (s *Site) fail(w http.ResponseWriter, err error) {
	s.logger.WithError(err).Error("page render failed")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

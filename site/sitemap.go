package site

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap writes the XML sitemap: the homepage, every stock page and every
// sector page, all stamped with now.
func (s *Site) Sitemap(w io.Writer, now time.Time) error {
	lastMod := now.UTC().Format("2006-01-02")
	set := urlSet{Xmlns: sitemapNS}
	add := func(path, freq, priority string) {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.url(path),
			LastMod:    lastMod,
			ChangeFreq: freq,
			Priority:   priority,
		})
	}

	add("/", "daily", "1.0")
	for _, st := range s.catalog.Stocks() {
		add(stockPath(st.Slug), "daily", "0.8")
	}
	for _, sec := range s.catalog.Sectors() {
		add(sectorPath(sec.Slug), "weekly", "0.7")
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Robots writes a robots.txt that allows everything and points at the sitemap.
func (s *Site) Robots(w io.Writer) error {
	_, err := fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s\n", s.url("/sitemap.xml"))
	return err
}

// searchEntry is one row of the index the navbar search box filters.
type searchEntry struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Slug          string  `json:"slug"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// SearchIndex writes search.json in catalog order.
func (s *Site) SearchIndex(w io.Writer) error {
	stocks := s.catalog.Stocks()
	entries := make([]searchEntry, len(stocks))
	for i, st := range stocks {
		entries[i] = searchEntry{
			Name:          st.Name,
			Symbol:        st.Symbol,
			Slug:          st.Slug,
			Price:         st.Price,
			Change:        st.Change,
			ChangePercent: st.ChangePercent,
		}
	}
	return json.NewEncoder(w).Encode(entries)
}

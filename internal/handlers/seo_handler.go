package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cawver-web/internal/config"
	"cawver-web/internal/content"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SEOHandler provides responses for SEO-focused endpoints like sitemap.xml and
// robots.txt.
type SEOHandler struct {
	content *content.Store
	config  *config.Config
}

func NewSEOHandler(store *content.Store, cfg *config.Config) *SEOHandler {
	return &SEOHandler{content: store, config: cfg}
}

// Sitemap lists every routed page. lastmod follows the last content load.
func (h *SEOHandler) Sitemap(c *gin.Context) {
	baseURL := h.normalizedBaseURL()
	if baseURL == "" {
		c.String(http.StatusInternalServerError, "Unable to determine site URL")
		return
	}

	lastMod := ""
	if h.content != nil {
		lastMod = formatLastMod(h.content.LoadedAt())
	}

	pages := Pages()
	urls := make([]sitemapURL, 0, len(pages))
	for _, page := range pages {
		urls = append(urls, sitemapURL{
			Loc:        joinURL(baseURL, page.Path),
			LastMod:    lastMod,
			ChangeFreq: page.ChangeFreq,
			Priority:   page.Priority,
		})
	}

	response := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.XML(http.StatusOK, response)
}

// Robots renders a robots.txt file that references the generated sitemap.
// Outside production every crawler is turned away.
func (h *SEOHandler) Robots(c *gin.Context) {
	lines := []string{"User-agent: *"}

	if h.config.IsProduction() {
		lines = append(lines, "Allow: /", "Disallow: /api/")
	} else {
		lines = append(lines, "Disallow: /")
	}

	if baseURL := h.normalizedBaseURL(); baseURL != "" {
		lines = append(lines, fmt.Sprintf("Sitemap: %s", joinURL(baseURL, "/sitemap.xml")))
	}

	body := strings.Join(lines, "\n") + "\n"

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (h *SEOHandler) normalizedBaseURL() string {
	return strings.TrimSuffix(strings.TrimSpace(h.config.SiteURL), "/")
}

func joinURL(base, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func formatLastMod(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

package handlers

import (
	"fmt"
	"log"
	"net/http"
	"plantastic/internal/services"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type SEOHandler struct {
	siteURL string
	forum   *services.ForumService
}

func NewSEOHandler(siteURL string, forum *services.ForumService) *SEOHandler {
	return &SEOHandler{siteURL: strings.TrimRight(siteURL, "/"), forum: forum}
}

// RobotsTxt handles GET /robots.txt.
func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /

Disallow: /account
Disallow: /login
Disallow: /register

# JSON API
Disallow: /posts
Disallow: /profile
Disallow: /favorites
Disallow: /ws

Sitemap: %s/sitemap.xml
`, h.siteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// SitemapXML handles GET /sitemap.xml. The forum entry carries the time of the newest post.
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	now := time.Now().Format("2006-01-02")
	forumMod := now
	if last, err := h.forum.LastPostAt(c.Request.Context()); err != nil {
		log.Printf("[sitemap] last post: %v", err)
	} else if !last.IsZero() {
		forumMod = last.Format("2006-01-02")
	}

	pages := []struct {
		path       string
		lastmod    string
		changefreq string
		priority   float64
	}{
		{"/", now, "weekly", 1.0},
		{"/forum", forumMod, "hourly", 0.9},
		{"/explore", now, "weekly", 0.8},
		{"/about", now, "monthly", 0.5},
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`)
	for _, p := range pages {
		fmt.Fprintf(&b, `  <url>
    <loc>%s%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>%s</changefreq>
    <priority>%.1f</priority>
  </url>
`, h.siteURL, p.path, p.lastmod, p.changefreq, p.priority)
	}
	b.WriteString(`</urlset>`)

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

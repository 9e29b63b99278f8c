package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cawver-web/internal/content"
	"cawver-web/internal/middleware"
	"cawver-web/pkg/logger"
	"cawver-web/pkg/navigation"
)

func (h *TemplateHandler) basePageData(site *content.Site, title, description string, extra gin.H) gin.H {
	fullTitle := site.Brand.Name
	if title != "" {
		fullTitle = fmt.Sprintf("%s - %s", title, site.Brand.Name)
	}
	if description == "" {
		description = h.config.SiteDescription
	}

	data := gin.H{
		"Title":       fullTitle,
		"Description": description,
		"Site": gin.H{
			"Name":      site.Brand.Name,
			"Credit":    site.Brand.Credit,
			"Copyright": site.Footer.Copyright,
			"URL":       h.config.SiteURL,
		},
		"Footer": site.FooterItems(),
	}

	for k, v := range extra {
		data[k] = v
	}

	return data
}

func (h *TemplateHandler) renderTemplate(c *gin.Context, status int, templateName, title, description string, extra gin.H) {
	site := h.content.Site()
	data := h.basePageData(site, title, description, extra)

	bar := h.setNavigationState(c, data, site)
	defer bar.Close()

	h.renderWithLayout(c, status, "base.html", templateName+".html", data)
}

func (h *TemplateHandler) renderWithLayout(c *gin.Context, status int, layout, page string, data gin.H) {
	data["CanonicalURL"] = h.config.SiteURL + c.Request.URL.Path

	if noIndex, ok := data["NoIndex"].(bool); ok && noIndex {
		c.Header("X-Robots-Tag", "noindex, nofollow")
	}

	contentTmpl := h.templates.Lookup(page)
	if contentTmpl == nil {
		logFromContext(c).WithField("template", page).Error("Content template not found")
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Template not found")
		return
	}

	buf, err := h.executeTemplate(contentTmpl, data)
	if err != nil {
		logFromContext(c).WithError(err).WithField("template", page).Error("Failed to render content")
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to render content")
		return
	}

	data["Content"] = template.HTML(buf)

	layoutTmpl := h.templates.Lookup(layout)
	if layoutTmpl == nil {
		logFromContext(c).WithField("template", layout).Error("Layout template not found")
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Template not found")
		return
	}

	output, err := h.executeTemplate(layoutTmpl, data)
	if err != nil {
		logFromContext(c).WithError(err).WithField("template", layout).Error("Failed to render layout")
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to render layout")
		return
	}

	c.Data(status, "text/html; charset=utf-8", output)
}

// setNavigationState mounts the navigation bar for this view. The request
// path is used verbatim as the current path; a menu=open query is the toggle
// event of a client without scripting.
func (h *TemplateHandler) setNavigationState(c *gin.Context, data gin.H, site *content.Site) *navigation.Bar {
	currentPath := c.Request.URL.Path
	data["ActivePath"] = currentPath

	bar := navigation.NewBar(site.NavigationItems())
	if c.Query(navigation.MenuQueryParam) == navigation.MenuOpenValue {
		bar.Toggle()
	}

	data["Nav"] = bar.View(currentPath)
	middleware.ObserveMenuState(bar.Menu().String())

	return bar
}

func (h *TemplateHandler) executeTemplate(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func logFromContext(c *gin.Context) *logrus.Entry {
	return logger.FromContext(c.Request.Context())
}

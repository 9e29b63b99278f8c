package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cawver-web/internal/content"
)

// Page is one routed view of the site.
type Page struct {
	Path       string
	Name       string
	Template   string
	ChangeFreq string
	Priority   string

	// resolve picks the page's copy out of the current site content.
	resolve func(site *content.Site) pageCopy
}

type pageCopy struct {
	Title       string
	Description string
	Data        interface{}
}

var sitePages = []Page{
	{
		Path: "/", Name: "Home", Template: "home", ChangeFreq: "weekly", Priority: "1.0",
		resolve: func(site *content.Site) pageCopy {
			return pageCopy{Title: site.Home.Hero.Title, Description: site.Home.Hero.Lead, Data: site.Home}
		},
	},
	{
		Path: "/thesis", Name: "Thesis", Template: "thesis", ChangeFreq: "monthly", Priority: "0.8",
		resolve: func(site *content.Site) pageCopy {
			return pageCopy{Title: site.Thesis.Title, Description: site.Thesis.Lead, Data: site.Thesis}
		},
	},
	{
		Path: "/portfolio", Name: "Portfolio", Template: "portfolio", ChangeFreq: "weekly", Priority: "0.7",
		resolve: func(site *content.Site) pageCopy {
			return pageCopy{Title: site.Portfolio.Title, Description: site.Portfolio.Lead, Data: site.Portfolio}
		},
	},
	{
		Path: "/pitch", Name: "Pitch", Template: "pitch", ChangeFreq: "monthly", Priority: "0.9",
		resolve: func(site *content.Site) pageCopy {
			return pageCopy{Title: site.Pitch.Title, Description: site.Pitch.Lead, Data: site.Pitch}
		},
	},
	{
		Path: "/garage", Name: "The Garage", Template: "garage", ChangeFreq: "monthly", Priority: "0.8",
		resolve: func(site *content.Site) pageCopy {
			return pageCopy{Title: site.Garage.Title, Description: site.Garage.Lead, Data: site.Garage}
		},
	},
	{
		Path: "/apply", Name: "Apply", Template: "apply", ChangeFreq: "monthly", Priority: "0.6",
		resolve: func(site *content.Site) pageCopy {
			return pageCopy{Title: site.Apply.Title, Description: site.Apply.Lead, Data: site.Apply}
		},
	},
}

// Pages returns the routed views in registration order.
func Pages() []Page {
	pages := make([]Page, len(sitePages))
	copy(pages, sitePages)
	return pages
}

// Render returns the handler serving page.
func (h *TemplateHandler) Render(page Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		site := h.content.Site()
		resolved := page.resolve(site)
		h.renderTemplate(c, http.StatusOK, page.Template, resolved.Title, resolved.Description, gin.H{
			"Page":     resolved.Data,
			"PageName": page.Name,
		})
	}
}

// RenderNotFound serves unknown paths. The layout still renders, with no
// navigation link active.
func (h *TemplateHandler) RenderNotFound(c *gin.Context) {
	h.renderTemplate(c, http.StatusNotFound, "not_found", "Page not found", "The requested page could not be found", gin.H{
		"NoIndex": true,
	})
}

func (h *TemplateHandler) renderError(c *gin.Context, status int, title, msg string) {
	site := h.content.Site()

	data := gin.H{
		"Title":      title,
		"Message":    msg,
		"StatusCode": status,
		"Site": gin.H{
			"Name": site.Brand.Name,
		},
	}

	errorTmpl := h.templates.Lookup("error.html")
	if errorTmpl == nil {
		c.String(status, msg)
		return
	}

	output, err := h.executeTemplate(errorTmpl, data)
	if err != nil {
		logFromContext(c).WithError(err).Error("Failed to render error template")
		c.String(status, msg)
		return
	}

	c.Data(status, "text/html; charset=utf-8", output)
}

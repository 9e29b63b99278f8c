package handlers

import (
	"fmt"
	"html/template"

	"cawver-web/internal/config"
	"cawver-web/internal/content"
)

type TemplateHandler struct {
	content   *content.Store
	templates *template.Template
	config    *config.Config
}

func NewTemplateHandler(store *content.Store, cfg *config.Config, templates *template.Template) (*TemplateHandler, error) {
	if templates == nil {
		return nil, fmt.Errorf("templates are required")
	}
	if store == nil {
		return nil, fmt.Errorf("content store is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	for _, name := range append(pageTemplateNames(), "base.html", "error.html", "not_found.html") {
		if templates.Lookup(name) == nil {
			return nil, fmt.Errorf("template %s is missing", name)
		}
	}

	return &TemplateHandler{
		content:   store,
		templates: templates,
		config:    cfg,
	}, nil
}

func pageTemplateNames() []string {
	names := make([]string, 0, len(sitePages))
	for _, page := range sitePages {
		names = append(names, page.Template+".html")
	}
	return names
}

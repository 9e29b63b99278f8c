package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"cawver-web/internal/config"
	"cawver-web/internal/content"
	"cawver-web/pkg/navigation"
	"cawver-web/pkg/utils"
	"cawver-web/web"
)

func newTestHandler(t *testing.T) *TemplateHandler {
	t.Helper()

	store, err := content.Open("", nil)
	if err != nil {
		t.Fatalf("failed to open content: %v", err)
	}

	hasher := utils.NewAssetHasher(web.Static(), "/static")
	templates, err := utils.LoadTemplates(web.Templates(), utils.GetTemplateFuncs(hasher.Version))
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	cfg := &config.Config{
		SiteDescription: "test description",
		SiteURL:         "https://cawver.test",
	}

	handler, err := NewTemplateHandler(store, cfg, templates)
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	return handler
}

func TestSetNavigationStateActivePath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestHandler(t)
	site := handler.content.Site()

	cases := []struct {
		name     string
		request  string
		expected string
	}{
		{name: "Trailing slash kept", request: "/thesis/", expected: "/thesis/"},
		{name: "Query dropped", request: "/pitch?ref=mail", expected: "/pitch"},
		{name: "Root", request: "/", expected: "/"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(recorder)
			ctx.Request = httptest.NewRequest(http.MethodGet, tc.request, nil)

			data := gin.H{}
			handler.setNavigationState(ctx, data, site)

			if got := data["ActivePath"]; got != tc.expected {
				t.Fatalf("expected ActivePath %s, got %v", tc.expected, got)
			}
		})
	}
}

func TestSetNavigationStateActiveFlags(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestHandler(t)
	site := handler.content.Site()

	cases := []struct {
		request string
		active  []bool
	}{
		{request: "/", active: []bool{true, false, false, false, false}},
		{request: "/thesis", active: []bool{false, true, false, false, false}},
		{request: "/garage/apply", active: []bool{false, false, false, false, false}},
		{request: "/thesis/", active: []bool{false, false, false, false, false}},
	}

	for _, tc := range cases {
		t.Run(tc.request, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = httptest.NewRequest(http.MethodGet, tc.request, nil)

			data := gin.H{}
			handler.setNavigationState(ctx, data, site)

			view := data["Nav"].(navigation.View)
			if len(view.Links) != len(tc.active) {
				t.Fatalf("expected %d links, got %d", len(tc.active), len(view.Links))
			}
			for i, link := range view.Links {
				if link.Active != tc.active[i] {
					t.Errorf("link %s: expected active=%v", link.Path, tc.active[i])
				}
			}
		})
	}
}

func TestSetNavigationStateMenuQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestHandler(t)
	site := handler.content.Site()

	cases := []struct {
		request    string
		open       bool
		toggleHref string
	}{
		{request: "/portfolio", open: false, toggleHref: "/portfolio?menu=open"},
		{request: "/portfolio?menu=open", open: true, toggleHref: "/portfolio"},
		{request: "/portfolio?menu=closed", open: false, toggleHref: "/portfolio?menu=open"},
		{request: "/portfolio?menu=OPEN", open: false, toggleHref: "/portfolio?menu=open"},
	}

	for _, tc := range cases {
		t.Run(tc.request, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = httptest.NewRequest(http.MethodGet, tc.request, nil)

			data := gin.H{}
			bar := handler.setNavigationState(ctx, data, site)

			view := data["Nav"].(navigation.View)
			if view.MenuOpen != tc.open {
				t.Fatalf("expected menu open=%v", tc.open)
			}
			if view.ToggleHref != tc.toggleHref {
				t.Fatalf("expected toggle href %s, got %s", tc.toggleHref, view.ToggleHref)
			}

			bar.Close()
			if bar.Menu() != navigation.MenuClosed {
				t.Fatalf("expected closed menu after teardown")
			}
		})
	}
}

func TestBasePageDataTitle(t *testing.T) {
	handler := newTestHandler(t)
	site := handler.content.Site()

	data := handler.basePageData(site, "Thesis", "", gin.H{"PageName": "Thesis"})
	if data["Title"] != "Thesis - cawver" {
		t.Fatalf("unexpected title %v", data["Title"])
	}
	if data["Description"] != "test description" {
		t.Fatalf("expected config description fallback, got %v", data["Description"])
	}
	if data["PageName"] != "Thesis" {
		t.Fatalf("extra data not merged")
	}

	untitled := handler.basePageData(site, "", "custom", nil)
	if untitled["Title"] != "cawver" || untitled["Description"] != "custom" {
		t.Fatalf("unexpected untitled data %v", untitled)
	}
}

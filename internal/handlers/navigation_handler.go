package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cawver-web/internal/content"
	"cawver-web/pkg/navigation"
	"cawver-web/pkg/validator"
)

type NavigationHandler struct {
	content *content.Store
}

func NewNavigationHandler(store *content.Store) *NavigationHandler {
	validator.Init()
	return &NavigationHandler{content: store}
}

type navigationQuery struct {
	Path string `form:"path" binding:"required,route_path"`
	Menu string `form:"menu"`
}

// Get resolves the navigation bar for a path the same way a page render
// does, so clients can mirror the active link and menu state.
func (h *NavigationHandler) Get(c *gin.Context) {
	if h.content == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Content not configured"})
		return
	}

	var query navigationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path must be a site-relative route"})
		return
	}

	bar := navigation.NewBar(h.content.Site().NavigationItems())
	defer bar.Close()

	if query.Menu == navigation.MenuOpenValue {
		bar.Toggle()
	}

	c.JSON(http.StatusOK, gin.H{"navigation": bar.View(query.Path)})
}

package app

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cawver-web/internal/background"
	"cawver-web/internal/config"
	"cawver-web/internal/content"
	"cawver-web/internal/handlers"
	"cawver-web/internal/middleware"
	"cawver-web/pkg/logger"
	"cawver-web/pkg/utils"
	"cawver-web/web"
)

type Options struct {
	// BaseContext bounds background workers. Defaults to context.Background.
	BaseContext context.Context
}

type Application struct {
	cfg     *config.Config
	options Options

	content     *content.Store
	scheduler   *background.Scheduler
	watcher     *content.Watcher
	rateLimiter *middleware.RateLimitManager
	templates   *template.Template

	handlers handlerContainer
	router   *gin.Engine
	server   *http.Server
}

type handlerContainer struct {
	Template   *handlers.TemplateHandler
	SEO        *handlers.SEOHandler
	Navigation *handlers.NavigationHandler
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if opts.BaseContext == nil {
		opts.BaseContext = context.Background()
	}

	app := &Application{
		cfg:     cfg,
		options: opts,
	}

	if err := app.initContent(); err != nil {
		return nil, err
	}

	if err := app.initTemplates(); err != nil {
		app.stopBackground(context.Background())
		return nil, err
	}

	if err := app.initHandlers(); err != nil {
		app.stopBackground(context.Background())
		return nil, err
	}

	app.initRateLimiter()
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

// Shutdown drains the HTTP server and then stops background work. Background
// work is stopped even when draining fails; the drain error is returned.
func (a *Application) Shutdown(ctx context.Context) error {
	var serverErr error
	if a.server != nil {
		serverErr = a.server.Shutdown(ctx)
	}

	a.stopBackground(ctx)

	if a.rateLimiter != nil {
		if err := a.rateLimiter.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limiter", nil)
		}
	}

	return serverErr
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) Content() *content.Store {
	return a.content
}

func (a *Application) initContent() error {
	store, err := content.Open(a.cfg.ContentFile, a.applyOverrides)
	if err != nil {
		return fmt.Errorf("failed to load site content: %w", err)
	}
	a.content = store

	source := store.Source()
	if source == "" {
		source = "embedded"
	}
	logger.Info("Site content loaded", map[string]interface{}{"source": source})

	if !a.cfg.ContentWatch || a.cfg.ContentFile == "" {
		return nil
	}

	a.scheduler = background.NewScheduler(background.SchedulerConfig{WorkerCount: 1})
	a.scheduler.Start(a.options.BaseContext)

	watcher, err := content.NewWatcher(store, a.scheduler)
	if err != nil {
		a.stopBackground(context.Background())
		return fmt.Errorf("failed to watch site content: %w", err)
	}
	watcher.Start()
	a.watcher = watcher

	return nil
}

// applyOverrides lets the environment replace contact details and the brand
// name without editing the content file.
func (a *Application) applyOverrides(site *content.Site) {
	if name := strings.TrimSpace(a.cfg.SiteName); name != "" {
		site.Brand.Name = name
	}
	if email := strings.TrimSpace(a.cfg.PitchEmail); email != "" {
		site.Pitch.Email = email
	}
	if email := strings.TrimSpace(a.cfg.ApplyEmail); email != "" {
		site.Apply.Email = email
	}
}

func (a *Application) initTemplates() error {
	hasher := utils.NewAssetHasher(web.Static(), "/static")

	templates, err := utils.LoadTemplates(web.Templates(), utils.GetTemplateFuncs(hasher.Version))
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	a.templates = templates

	logger.Info("Templates loaded successfully", nil)
	return nil
}

func (a *Application) initHandlers() error {
	templateHandler, err := handlers.NewTemplateHandler(a.content, a.cfg, a.templates)
	if err != nil {
		return fmt.Errorf("failed to initialize template handler: %w", err)
	}

	a.handlers = handlerContainer{
		Template:   templateHandler,
		SEO:        handlers.NewSEOHandler(a.content, a.cfg),
		Navigation: handlers.NewNavigationHandler(a.content),
	}
	return nil
}

func (a *Application) initRateLimiter() {
	if a.cfg.RateLimitRequests <= 0 || a.cfg.RateLimitWindow <= 0 {
		return
	}
	a.rateLimiter = middleware.NewRateLimitManager(a.options.BaseContext)
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// Active links compare the raw path, so /thesis/ must not be rewritten.
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.RateLimitMiddleware(a.cfg, a.rateLimiter))
	router.Use(middleware.SecurityHeadersMiddleware())
	if !a.cfg.IsProduction() {
		router.Use(middleware.NoIndexMiddleware("/robots.txt"))
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  a.cfg.CORSOrigins,
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "healthy",
			"time":           time.Now().UTC().Format(time.RFC3339),
			"content_loaded": a.content.LoadedAt().UTC().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	static := http.FS(web.Static())
	router.StaticFS("/static", static)
	router.StaticFileFS("/favicon.ico", "logo.svg", static)

	for _, page := range handlers.Pages() {
		router.GET(page.Path, a.handlers.Template.Render(page))
	}

	router.GET("/sitemap.xml", a.handlers.SEO.Sitemap)
	router.GET("/robots.txt", a.handlers.SEO.Robots)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/navigation", a.handlers.Navigation.Get)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Route not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		a.handlers.Template.RenderNotFound(c)
	})

	a.router = router
}

// stopBackground stops the content watcher before the scheduler it feeds.
func (a *Application) stopBackground(ctx context.Context) {
	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			logger.Error(err, "Failed to stop content watcher", nil)
		}
	}

	if a.scheduler != nil {
		if err := a.scheduler.Shutdown(ctx); err != nil {
			logger.Error(err, "Failed to stop background scheduler", nil)
		}
	}
}

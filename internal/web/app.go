// Package web binds the builder flow to HTTP: five pages, the customization
// endpoint, and the PDF/backup download routes.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/django/v3"

	"github.com/inkwellhq/resumepress/internal/config"
	"github.com/inkwellhq/resumepress/internal/export"
	"github.com/inkwellhq/resumepress/internal/flow"
	"github.com/inkwellhq/resumepress/internal/render"
	"github.com/inkwellhq/resumepress/internal/resume"
	"github.com/inkwellhq/resumepress/internal/storage"
)

//go:embed views/*.html
var viewsFS embed.FS

// App holds the application dependencies.
type App struct {
	Config   config.Config
	Logger   *log.Logger
	Store    storage.Store
	Flow     *flow.Controller
	Renderer *render.Renderer
	Exports  *export.Service

	pdfEngine *export.ChromiumEngine
}

// NewApp wires the renderer, the Chromium engine, the export service, and the
// flow controller around the given store.
func NewApp(cfg config.Config, logger *log.Logger, store storage.Store) (*App, error) {
	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, err
	}

	engine := &export.ChromiumEngine{
		BrowserPath: cfg.PDF.ChromiumPath,
		Headless:    cfg.PDF.Headless,
		Timeout:     time.Duration(cfg.PDF.TimeoutSeconds) * time.Second,
		Args:        cfg.PDF.Args,
	}

	printBackground := cfg.PDF.PrintBackground
	opts := export.Options{
		PageSize:        cfg.PDF.PageSize,
		Scale:           cfg.PDF.Scale,
		Supersample:     cfg.PDF.Supersample,
		PrintBackground: &printBackground,
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Flow:      flow.NewController(store, resume.NewIDSource(), logger.With("component", "flow")),
		Renderer:  renderer,
		Exports:   export.NewService(renderer, engine, opts, logger.With("component", "export")),
		pdfEngine: engine,
	}, nil
}

// Close releases the shared browser.
func (a *App) Close() error {
	if a.pdfEngine != nil {
		return a.pdfEngine.Close()
	}
	return nil
}

// Fiber builds the HTTP application with views, middleware, and routes.
func (a *App) Fiber() (*fiber.App, error) {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, err
	}
	engine := django.NewFileSystem(http.FS(views), ".html")

	app := fiber.New(fiber.Config{
		AppName:               "ResumePress",
		Views:                 engine,
		DisableStartupMessage: true,
	})

	app.Use(fiberrecover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(a.paymentReturn())

	a.setupRoutes(app)
	return app, nil
}

func (a *App) setupRoutes(app *fiber.App) {
	app.Get("/", a.HomePage)
	app.Get("/form", a.FormPage)
	app.Post("/form", a.SubmitForm)
	app.Get("/preview", a.PreviewPage)
	app.Get("/preview/frame", a.PreviewFrame)
	app.Post("/customize", a.Customize)
	app.Get("/proceed", a.Proceed)
	app.Get("/payment", a.PaymentPage)
	app.Post("/payment/checkout", a.Checkout)
	app.Get("/download", a.DownloadPage)
	app.Get("/download/pdf/:template", a.DownloadPDF)
	app.Get("/download/archive", a.DownloadArchive)
	app.Get("/download/backup/:ext", a.DownloadBackup)
}

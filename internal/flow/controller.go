// Package flow owns the page state machine:
//
//	home → form → preview → {payment → download | download}
//
// with back-edges form ← preview and preview ← payment. The payment gate is
// consulted at the moment of the preview → download transition, never cached.
package flow

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/inkwellhq/resumepress/internal/resume"
	"github.com/inkwellhq/resumepress/internal/storage"
)

// Page identifies one step of the builder flow.
type Page string

const (
	PageHome     Page = "home"
	PageForm     Page = "form"
	PagePreview  Page = "preview"
	PagePayment  Page = "payment"
	PageDownload Page = "download"
)

// Controller drives navigation and owns the session's resume data and
// customization, mirroring both into the store. Store write failures are
// logged and never block navigation.
type Controller struct {
	store  storage.Store
	ids    resume.IDSource
	logger *log.Logger

	mu      sync.Mutex
	current Page
}

// NewController starts a session on the home page.
func NewController(store storage.Store, ids resume.IDSource, logger *log.Logger) *Controller {
	return &Controller{
		store:   store,
		ids:     ids,
		logger:  logger,
		current: PageHome,
	}
}

// Current returns the session's current page.
func (c *Controller) Current() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Start moves from home into the form.
func (c *Controller) Start() Page {
	return c.goTo(PageForm)
}

// BackToForm is the preview → form back-edge.
func (c *Controller) BackToForm() Page {
	return c.goTo(PageForm)
}

// BackToPreview is the payment → preview back-edge.
func (c *Controller) BackToPreview() Page {
	return c.goTo(PagePreview)
}

// SubmitForm validates the resume, assigns identifiers to new entries,
// persists it, and advances to the preview. Validation failure keeps the
// session on the form.
func (c *Controller) SubmitForm(ctx context.Context, data resume.Data) (resume.Data, error) {
	if err := data.Validate(); err != nil {
		return data, err
	}
	resume.AssignIDs(&data, c.ids)
	if err := c.store.SaveResume(ctx, data); err != nil {
		c.logger.Error("resume save failed", "err", err)
	}
	c.goTo(PagePreview)
	return data, nil
}

// Customization returns the session's customization, creating and persisting
// the default record on the first preview visit.
func (c *Controller) Customization(ctx context.Context) resume.Customization {
	current, ok, err := c.store.LoadCustomization(ctx)
	if err != nil {
		c.logger.Warn("customization load failed", "err", err)
	}
	if !ok {
		current = resume.DefaultCustomization()
		c.persistCustomization(ctx, current)
	}
	return current
}

// SetTemplate merge-patches the template selection and persists immediately.
func (c *Controller) SetTemplate(ctx context.Context, t resume.Template) resume.Customization {
	current := c.Customization(ctx)
	current.Template = t
	c.persistCustomization(ctx, current)
	return current
}

// SetPrimaryColor merge-patches the accent color and persists immediately.
// Any hex string is accepted; the palette is a UI convenience.
func (c *Controller) SetPrimaryColor(ctx context.Context, hex string) resume.Customization {
	current := c.Customization(ctx)
	current.PrimaryColor = hex
	c.persistCustomization(ctx, current)
	return current
}

// SetFontFamily merge-patches the font selection and persists immediately.
func (c *Controller) SetFontFamily(ctx context.Context, font string) resume.Customization {
	current := c.Customization(ctx)
	current.FontFamily = font
	c.persistCustomization(ctx, current)
	return current
}

// RequestDownload resolves the download action from the preview. The payment
// flag is read at this moment: paid sessions go straight to download,
// unpaid sessions land on the payment page.
func (c *Controller) RequestDownload(ctx context.Context) Page {
	paid, err := c.store.PaymentCompleted(ctx)
	if err != nil {
		c.logger.Warn("payment flag check failed", "err", err)
		paid = false
	}
	if paid {
		return c.goTo(PageDownload)
	}
	return c.goTo(PagePayment)
}

// CompletePayment records a successful payment callback and forces the
// session to the download page.
func (c *Controller) CompletePayment(ctx context.Context) Page {
	if err := c.store.MarkPaymentCompleted(ctx); err != nil {
		c.logger.Error("payment flag save failed", "err", err)
	}
	return c.goTo(PageDownload)
}

// GoHome returns to the landing page.
func (c *Controller) GoHome() Page {
	return c.goTo(PageHome)
}

func (c *Controller) persistCustomization(ctx context.Context, current resume.Customization) {
	if err := c.store.SaveCustomization(ctx, current); err != nil {
		c.logger.Error("customization save failed", "err", err)
	}
}

func (c *Controller) goTo(p Page) Page {
	c.mu.Lock()
	c.current = p
	c.mu.Unlock()
	return p
}

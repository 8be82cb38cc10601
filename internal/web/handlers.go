package web

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/inkwellhq/resumepress/internal/export"
	"github.com/inkwellhq/resumepress/internal/flow"
	"github.com/inkwellhq/resumepress/internal/resume"
)

// HomePage renders the landing page.
func (a *App) HomePage(c *fiber.Ctx) error {
	a.Flow.GoHome()
	return c.Render("home", fiber.Map{
		"Title": "ResumePress",
	})
}

// FormPage renders the data entry form, prefilled with any stored resume.
func (a *App) FormPage(c *fiber.Ctx) error {
	a.Flow.Start()

	data, ok, err := a.Store.LoadResume(c.UserContext())
	if err != nil {
		a.Logger.Warn("resume load failed", "err", err)
	}
	if !ok {
		data = resume.Data{}
	}
	prefill, err := json.Marshal(data)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not encode stored resume")
	}

	return c.Render("form", fiber.Map{
		"Title":    "Your Details",
		"DataJSON": string(prefill),
	})
}

// SubmitForm accepts the full resume as JSON, validates it, and on success
// tells the client where to go next. Validation failures keep the user on the
// form with a message.
func (a *App) SubmitForm(c *fiber.Ctx) error {
	var data resume.Data
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "request body is not a valid resume payload",
		})
	}

	if _, err := a.Flow.SubmitForm(c.UserContext(), data); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"redirect": "/preview"})
}

// PreviewPage renders the preview shell: template picker, color palette, font
// selector, and the live document in an iframe. Without stored resume data the
// user is sent back to the form.
func (a *App) PreviewPage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, ok, err := a.Store.LoadResume(ctx)
	if err != nil {
		a.Logger.Warn("resume load failed", "err", err)
	}
	if !ok {
		return c.Redirect("/form", fiber.StatusFound)
	}

	cust := a.Flow.Customization(ctx)

	templates := make([]fiber.Map, 0, len(resume.Templates()))
	for _, t := range resume.Templates() {
		templates = append(templates, fiber.Map{
			"Name":     t.String(),
			"Display":  t.DisplayName(),
			"Selected": t == cust.Template,
		})
	}

	colors := make([]fiber.Map, 0, len(resume.DefaultColors))
	for _, hex := range resume.DefaultColors {
		colors = append(colors, fiber.Map{
			"Hex":      hex,
			"Selected": hex == cust.PrimaryColor,
		})
	}

	fonts := make([]fiber.Map, 0, len(resume.FontOptions))
	for _, f := range resume.FontOptions {
		fonts = append(fonts, fiber.Map{
			"Name":     f.Name,
			"Value":    f.Value,
			"Selected": f.Value == cust.FontFamily,
		})
	}

	return c.Render("preview", fiber.Map{
		"Title":     "Preview",
		"Templates": templates,
		"Colors":    colors,
		"Fonts":     fonts,
	})
}

// PreviewFrame serves the raw rendered resume document for the preview iframe.
func (a *App) PreviewFrame(c *fiber.Ctx) error {
	ctx := c.UserContext()

	data, ok, err := a.Store.LoadResume(ctx)
	if err != nil {
		a.Logger.Warn("resume load failed", "err", err)
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "no resume data")
	}

	cust := a.Flow.Customization(ctx)
	html, err := a.Renderer.Render(cust.Template, data, cust)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "preview render failed")
	}

	c.Type("html", "utf-8")
	return c.Send(html)
}

type customizePatch struct {
	Template     *string `json:"template"`
	PrimaryColor *string `json:"primaryColor"`
	FontFamily   *string `json:"fontFamily"`
}

// Customize applies a merge patch to the customization record. Absent fields
// keep their stored value; each change is persisted before responding.
func (a *App) Customize(c *fiber.Ctx) error {
	var patch customizePatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "request body is not a valid customization patch",
		})
	}

	ctx := c.UserContext()
	cust := a.Flow.Customization(ctx)

	if patch.Template != nil {
		t, err := resume.ParseTemplate(*patch.Template)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		cust = a.Flow.SetTemplate(ctx, t)
	}
	if patch.PrimaryColor != nil {
		cust = a.Flow.SetPrimaryColor(ctx, *patch.PrimaryColor)
	}
	if patch.FontFamily != nil {
		cust = a.Flow.SetFontFamily(ctx, *patch.FontFamily)
	}

	return c.JSON(cust)
}

// Proceed resolves the download button on the preview. Paid sessions land on
// the download page, unpaid sessions on the payment page.
func (a *App) Proceed(c *fiber.Ctx) error {
	page := a.Flow.RequestDownload(c.UserContext())
	if page == flow.PageDownload {
		return c.Redirect("/download", fiber.StatusFound)
	}
	return c.Redirect("/payment", fiber.StatusFound)
}

// Checkout hands the session off to the external payment provider. The URL is
// opaque; the provider returns with ?payment=success.
func (a *App) Checkout(c *fiber.Ctx) error {
	return c.Redirect(a.Config.Payment.CheckoutURL, fiber.StatusSeeOther)
}

// PaymentPage renders the checkout hand-off page.
func (a *App) PaymentPage(c *fiber.Ctx) error {
	return c.Render("payment", fiber.Map{
		"Title":       "Unlock Downloads",
		"CheckoutURL": a.Config.Payment.CheckoutURL,
		"SupportLink": a.Config.Payment.SupportLink,
	})
}

// DownloadPage renders the per-template download cards with their session
// state. With no stored resume it shows an empty state instead of failing.
func (a *App) DownloadPage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	data, ok, err := a.Store.LoadResume(ctx)
	if err != nil {
		a.Logger.Warn("resume load failed", "err", err)
	}

	states := a.Exports.States()
	cards := make([]fiber.Map, 0, len(resume.Templates()))
	for _, t := range resume.Templates() {
		cards = append(cards, fiber.Map{
			"Name":     t.String(),
			"Display":  t.DisplayName(),
			"State":    string(states[t]),
			"Filename": export.PDFFilename(data.PersonalInfo.FullName, t),
		})
	}

	return c.Render("download", fiber.Map{
		"Title":   "Download",
		"HasData": ok,
		"Cards":   cards,
	})
}

// DownloadPDF exports one template variant and streams the PDF.
func (a *App) DownloadPDF(c *fiber.Ctx) error {
	t, err := resume.ParseTemplate(c.Params("template"))
	if err != nil {
		return a.exportError(c, export.NewError(export.KindNotFound, err.Error(), nil))
	}

	ctx := c.UserContext()
	data, ok, err := a.Store.LoadResume(ctx)
	if err != nil {
		a.Logger.Warn("resume load failed", "err", err)
	}
	if !ok {
		return a.exportError(c, export.NewError(export.KindNotFound, "no resume data to export", nil))
	}

	cust := a.Flow.Customization(ctx)
	artifact, err := a.Exports.Export(ctx, t, data, cust)
	if err != nil {
		return a.exportError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Type("pdf")
	return c.Send(artifact.Data)
}

// DownloadArchive exports every variant and bundles the successful PDFs into
// a single zip. Individual failures are logged and skipped; only a fully
// failed run is an error.
func (a *App) DownloadArchive(c *fiber.Ctx) error {
	ctx := c.UserContext()

	data, ok, err := a.Store.LoadResume(ctx)
	if err != nil {
		a.Logger.Warn("resume load failed", "err", err)
	}
	if !ok {
		return a.exportError(c, export.NewError(export.KindNotFound, "no resume data to export", nil))
	}

	cust := a.Flow.Customization(ctx)
	results := a.Exports.ExportAll(ctx, data, cust)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	bundled := 0
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		entry, err := zw.Create(res.Artifact.Filename)
		if err != nil {
			return a.exportError(c, export.NewError(export.KindInternal, "archive write failed", err))
		}
		if _, err := entry.Write(res.Artifact.Data); err != nil {
			return a.exportError(c, export.NewError(export.KindInternal, "archive write failed", err))
		}
		bundled++
	}
	if err := zw.Close(); err != nil {
		return a.exportError(c, export.NewError(export.KindInternal, "archive write failed", err))
	}
	if bundled == 0 {
		return a.exportError(c, export.NewError(export.KindInternal, "every template export failed", nil))
	}

	filename := export.ArchiveFilename(data.PersonalInfo.FullName)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Set(fiber.HeaderContentType, "application/zip")
	return c.Send(buf.Bytes())
}

// DownloadBackup streams the raw resume data as a JSON or XLSX takeout file.
func (a *App) DownloadBackup(c *fiber.Ctx) error {
	ext, err := export.BackupExtension(c.Params("ext"))
	if err != nil {
		return a.exportError(c, err)
	}

	ctx := c.UserContext()
	data, ok, err := a.Store.LoadResume(ctx)
	if err != nil {
		a.Logger.Warn("resume load failed", "err", err)
	}
	if !ok {
		return a.exportError(c, export.NewError(export.KindNotFound, "no resume data to export", nil))
	}

	var payload []byte
	switch ext {
	case "json":
		payload, err = export.BackupJSON(data)
	case "xlsx":
		payload, err = export.BackupXLSX(data)
	}
	if err != nil {
		return a.exportError(c, err)
	}

	filename := export.BackupFilename(data.PersonalInfo.FullName, ext)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	if ext == "json" {
		c.Type("json", "utf-8")
	} else {
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	}
	return c.Send(payload)
}

// exportError maps export error kinds onto HTTP statuses and emits a JSON
// error body built from the normalized error.
func (a *App) exportError(c *fiber.Ctx, err error) error {
	kind := export.KindFromError(err)

	status := fiber.StatusInternalServerError
	switch kind {
	case export.KindValidation:
		status = fiber.StatusUnprocessableEntity
	case export.KindNotFound:
		status = fiber.StatusNotFound
	case export.KindInFlight:
		status = fiber.StatusConflict
	case export.KindTimeout:
		status = fiber.StatusGatewayTimeout
	case export.KindCanceled:
		status = fiber.StatusRequestTimeout
	}

	ge := export.AsGoError(err)
	return c.Status(status).JSON(fiber.Map{
		"error": ge.Message,
		"code":  string(kind),
	})
}

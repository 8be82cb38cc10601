package export

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	defaultPDFScale    = 1.0
	defaultSupersample = 2.0

	// A4 at 96 CSS px/in, used for the emulated viewport.
	viewportWidthPx  = 794
	viewportHeightPx = 1123
)

var pdfLengthPattern = regexp.MustCompile(`^\s*([0-9]+(?:\.[0-9]+)?)\s*([a-zA-Z]*)\s*$`)

var pdfPageSizesInches = map[string]struct {
	width  float64
	height float64
}{
	"A3":     {width: 11.69, height: 16.54},
	"A4":     {width: 8.27, height: 11.69},
	"A5":     {width: 5.83, height: 8.27},
	"LETTER": {width: 8.5, height: 11},
	"LEGAL":  {width: 8.5, height: 14},
}

// ChromiumEngine renders PDF output using a shared headless Chromium
// instance. One browser is spawned lazily and reused; each render runs in its
// own tab, so exports for distinct templates may be in flight concurrently.
type ChromiumEngine struct {
	BrowserPath string
	Headless    bool
	Timeout     time.Duration
	Args        []string

	initOnce      sync.Once
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// Render executes Chromium-based HTML-to-PDF rendering.
func (e *ChromiumEngine) Render(ctx context.Context, html []byte, opts Options) ([]byte, error) {
	if e == nil {
		return nil, NewError(KindInternal, "chromium engine is nil", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if err := e.ensureBrowser(); err != nil {
		return nil, NewError(KindInternal, "chromium engine init failed", err)
	}

	tabCtx, cancel := chromedp.NewContext(e.browserCtx)
	defer cancel()

	execCtx, cancelReq := context.WithCancel(tabCtx)
	defer cancelReq()
	go func() {
		select {
		case <-ctx.Done():
			cancelReq()
		case <-execCtx.Done():
		}
	}()
	if e.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		execCtx, cancelTimeout = context.WithTimeout(execCtx, e.Timeout)
		defer cancelTimeout()
	}

	supersample := opts.Supersample
	if supersample == 0 {
		supersample = defaultSupersample
	}

	var pdf []byte
	actions := []chromedp.Action{}
	if opts.BlockExternalAssets {
		actions = append(actions,
			network.Enable(),
			network.SetBlockedURLs().WithURLPatterns([]*network.BlockPattern{
				{URLPattern: "http://*", Block: true},
				{URLPattern: "https://*", Block: true},
			}),
		)
	}

	actions = append(actions,
		emulation.SetDeviceMetricsOverride(viewportWidthPx, viewportHeightPx, supersample, false),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		waitForImages(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			params, err := buildPrintToPDFParams(opts)
			if err != nil {
				return err
			}
			pdf, _, err = params.Do(ctx)
			return err
		}),
	)

	if err := chromedp.Run(execCtx, actions...); err != nil {
		return nil, NewError(KindInternal, "chromium pdf render failed", err)
	}
	return pdf, nil
}

// Close releases Chromium resources if they have been initialized.
func (e *ChromiumEngine) Close() error {
	if e == nil {
		return nil
	}
	if e.browserCancel != nil {
		e.browserCancel()
	}
	if e.allocCancel != nil {
		e.allocCancel()
	}
	return nil
}

func (e *ChromiumEngine) ensureBrowser() error {
	e.initOnce.Do(func() {
		options := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		if e.BrowserPath != "" {
			options = append(options, chromedp.ExecPath(e.BrowserPath))
		}
		options = append(options, chromedp.Flag("headless", e.Headless))
		options = append(options, allocatorOptionsFromArgs(e.Args)...)

		e.allocCtx, e.allocCancel = chromedp.NewExecAllocator(context.Background(), options...)
		e.browserCtx, e.browserCancel = chromedp.NewContext(e.allocCtx)
	})
	if e.allocCtx == nil || e.browserCtx == nil {
		return errors.New("chromium allocator unavailable")
	}
	return nil
}

// waitForImages blocks until every <img> (the user photo in particular) has
// finished loading, so the print never captures a half-loaded document.
func waitForImages() chromedp.Action {
	var done bool
	return chromedp.Poll(
		`Array.from(document.images).every((img) => img.complete)`,
		&done,
		chromedp.WithPollingInterval(50*time.Millisecond),
	)
}

func buildPrintToPDFParams(opts Options) (*page.PrintToPDFParams, error) {
	params := page.PrintToPDF()

	scale := opts.Scale
	if scale == 0 {
		scale = defaultPDFScale
	}
	if scale < 0.1 || scale > 2.0 {
		return nil, NewError(KindValidation, "pdf scale must be between 0.1 and 2.0", nil)
	}
	params = params.WithScale(scale)

	if opts.Landscape {
		params = params.WithLandscape(true)
	}

	printBackground := true
	if opts.PrintBackground != nil {
		printBackground = *opts.PrintBackground
	}
	params = params.WithPrintBackground(printBackground)

	pageSize := opts.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}
	size, ok := pdfPageSizesInches[strings.ToUpper(pageSize)]
	if !ok {
		return nil, NewError(KindValidation, fmt.Sprintf("unsupported pdf page size: %s", pageSize), nil)
	}
	params = params.WithPaperWidth(size.width).WithPaperHeight(size.height)

	top, err := parseLengthInches(orZero(opts.MarginTop))
	if err != nil {
		return nil, err
	}
	bottom, err := parseLengthInches(orZero(opts.MarginBottom))
	if err != nil {
		return nil, err
	}
	left, err := parseLengthInches(orZero(opts.MarginLeft))
	if err != nil {
		return nil, err
	}
	right, err := parseLengthInches(orZero(opts.MarginRight))
	if err != nil {
		return nil, err
	}
	params = params.WithMarginTop(top).WithMarginBottom(bottom).
		WithMarginLeft(left).WithMarginRight(right)

	return params, nil
}

func orZero(value string) string {
	if value == "" {
		return "0"
	}
	return value
}

func parseLengthInches(value string) (float64, error) {
	matches := pdfLengthPattern.FindStringSubmatch(value)
	if len(matches) != 3 {
		return 0, NewError(KindValidation, fmt.Sprintf("invalid pdf length: %s", value), nil)
	}

	raw := matches[1]
	unit := strings.ToLower(matches[2])
	if unit == "" {
		unit = "in"
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, NewError(KindValidation, fmt.Sprintf("invalid pdf length: %s", value), err)
	}

	switch unit {
	case "in":
		return amount, nil
	case "cm":
		return amount / 2.54, nil
	case "mm":
		return amount / 25.4, nil
	case "pt":
		return amount / 72.0, nil
	case "px":
		return amount / 96.0, nil
	default:
		return 0, NewError(KindValidation, fmt.Sprintf("unsupported pdf length unit: %s", unit), nil)
	}
}

func allocatorOptionsFromArgs(args []string) []chromedp.ExecAllocatorOption {
	options := make([]chromedp.ExecAllocatorOption, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		arg = strings.TrimPrefix(arg, "--")
		if arg == "" {
			continue
		}
		if name, value, ok := strings.Cut(arg, "="); ok {
			options = append(options, chromedp.Flag(name, value))
			continue
		}
		options = append(options, chromedp.Flag(arg, true))
	}
	return options
}

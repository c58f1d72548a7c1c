package render

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// A4 paper size in inches.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.7
)

// ChromeOptions configures the headless browser used for rendering.
type ChromeOptions struct {
	ExecPath    string        // empty uses the chromedp lookup
	UserDataDir string        // scratch profile directory
	Timeout     time.Duration // zero means no renderer-level timeout
}

// ChromeRenderer converts HTML into a PDF using a headless Chrome started for
// each call.
type ChromeRenderer struct {
	opts ChromeOptions
}

// NewChromeRenderer returns a renderer using opts.
func NewChromeRenderer(opts ChromeOptions) *ChromeRenderer {
	return &ChromeRenderer{opts: opts}
}

// Render launches a browser, loads html and prints it as an A4 landscape PDF
// with backgrounds, honouring the document's CSS page size. The browser
// process is torn down before Render returns, on success and on error.
func (r *ChromeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer func() {
		cancelBrowser()
		zap.S().Debugf("browser closed")
	}()

	// An empty Run starts the browser process.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	var pdf []byte
	if err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = page.PrintToPDF().
			WithPaperWidth(a4WidthInches).
			WithPaperHeight(a4HeightInches).
			WithLandscape(true).
			WithPrintBackground(true).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	})); err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}

	return pdf, nil
}

func (r *ChromeRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("single-process", true),
		chromedp.Flag("no-zygote", true),
	)
	if r.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.opts.ExecPath))
	}
	if r.opts.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(r.opts.UserDataDir))
	}
	return opts
}

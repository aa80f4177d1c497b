package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"shopquery/config"
	"shopquery/utils"
)

// Session is a chromedp-backed Launcher: one browser process with one
// tab, exclusively owned by a single query run.
type Session struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	opTimeout   time.Duration
	logger      *utils.Logger
}

// NewSession launches headless Chrome with the configured flags and
// installs a standing dialog handler that auto-accepts native prompts,
// so a stray confirm/alert cannot stall a run.
func NewSession(cfg *config.Config, logger *utils.Logger) (*Session, error) {
	chromeBin := findChromeBinary(cfg.ChromeBin)
	logger.Info("[browser] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.BrowserHeadless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("browser: launch: %w", err)
	}

	s := &Session{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		opTimeout:   time.Duration(cfg.BrowserOpTimeoutMs) * time.Millisecond,
		logger:      logger,
	}

	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		if dlg, ok := ev.(*page.EventJavascriptDialogOpening); ok {
			logger.Info("[browser] Dialog detected: %s", dlg.Message)
			go func() {
				if err := chromedp.Run(tabCtx, page.HandleJavaScriptDialog(true)); err != nil {
					logger.Warn("[browser] Failed to accept dialog: %v", err)
				}
			}()
		}
	})

	return s, nil
}

// NewPage returns the session's single tab.
func (s *Session) NewPage() (Page, error) {
	return s, nil
}

// Close tears down the tab and then the browser process.
func (s *Session) Close() error {
	s.cancelTab()
	s.cancelAlloc()
	return nil
}

func (s *Session) Navigate(url string) error {
	return chromedp.Run(s.ctx, chromedp.Navigate(url))
}

func (s *Session) ScrollBy(pixels int) error {
	return chromedp.Run(s.ctx,
		chromedp.Evaluate(fmt.Sprintf("window.scrollBy(0, %d)", pixels), nil))
}

func (s *Session) Sleep(d time.Duration) error {
	return chromedp.Run(s.ctx, chromedp.Sleep(d))
}

func (s *Session) Fill(selector, text string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opTimeout)
	defer cancel()
	return chromedp.Run(ctx,
		chromedp.SetValue(selector, text, chromedp.ByQuery),
	)
}

func (s *Session) PressKey(key string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opTimeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.KeyEvent(keyChord(key)))
}

func (s *Session) WaitVisible(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (s *Session) EvaluateInto(js string, out any) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opTimeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.Evaluate(js, out))
}

// keyChord maps a named key to its chromedp key code; unknown names pass
// through as literal characters.
func keyChord(key string) string {
	switch key {
	case "Enter":
		return kb.Enter
	case "Tab":
		return kb.Tab
	case "Escape":
		return kb.Escape
	default:
		return key
	}
}

// findChromeBinary locates the Chrome/Chromium binary, preferring the
// configured override.
func findChromeBinary(override string) string {
	if override != "" {
		return override
	}
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

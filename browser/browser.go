// Package browser wraps the headless-Chrome driver behind small
// capability interfaces so the scraper can run against a fake page in
// tests.
package browser

import "time"

// Page is the per-tab capability the executor and extractor drive. All
// methods return errors for logging at the caller; none of them panic.
type Page interface {
	// Navigate loads the URL and waits for the page load event.
	Navigate(url string) error
	// ScrollBy scrolls the viewport down by the given pixel amount.
	ScrollBy(pixels int) error
	// Sleep is a pure delay with no condition checked.
	Sleep(d time.Duration) error
	// Fill sets the value of the first element matching selector. It
	// errors when the selector matches nothing within the op timeout.
	Fill(selector, text string) error
	// PressKey dispatches one named key event ("Enter", ...) to the page.
	PressKey(key string) error
	// WaitVisible blocks until selector matches a visible element or the
	// timeout elapses.
	WaitVisible(selector string, timeout time.Duration) error
	// EvaluateInto runs a JS expression and unmarshals its result.
	EvaluateInto(js string, out any) error
}

// Launcher owns one browser session and hands out its page. Close tears
// down the page and then the browser; it is safe to call on every exit
// path.
type Launcher interface {
	NewPage() (Page, error)
	Close() error
}

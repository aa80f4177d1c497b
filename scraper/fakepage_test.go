package scraper

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// fakePage records every call and can be told to fail specific
// operations. It satisfies browser.Page.
type fakePage struct {
	calls   []string
	failOps map[string]error
	cards   []card
	evalErr error
	waitErr error
}

func newFakePage() *fakePage {
	return &fakePage{failOps: make(map[string]error)}
}

func (f *fakePage) record(op string) error {
	f.calls = append(f.calls, op)
	for prefix, err := range f.failOps {
		if strings.HasPrefix(op, prefix) {
			return err
		}
	}
	return nil
}

func (f *fakePage) Navigate(url string) error { return f.record("navigate " + url) }
func (f *fakePage) ScrollBy(px int) error     { return f.record(fmt.Sprintf("scroll %d", px)) }
func (f *fakePage) Sleep(d time.Duration) error {
	return f.record(fmt.Sprintf("sleep %s", d))
}
func (f *fakePage) Fill(selector, text string) error {
	return f.record(fmt.Sprintf("fill %s %s", selector, text))
}
func (f *fakePage) PressKey(key string) error { return f.record("press " + key) }

func (f *fakePage) WaitVisible(selector string, timeout time.Duration) error {
	f.calls = append(f.calls, "wait-visible "+selector)
	return f.waitErr
}

func (f *fakePage) EvaluateInto(js string, out any) error {
	f.calls = append(f.calls, "evaluate")
	if f.evalErr != nil {
		return f.evalErr
	}
	dst, ok := out.(*[]card)
	if !ok {
		return errors.New("unexpected evaluate target")
	}
	*dst = f.cards
	return nil
}

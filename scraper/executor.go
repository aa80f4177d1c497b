// Package scraper runs compiled workflows against a live page and
// extracts listing records using the site registry's rules.
package scraper

import (
	"fmt"
	"time"

	"shopquery/browser"
	"shopquery/utils"
	"shopquery/workflow"
)

// Executor interprets an action sequence against a page. Execution is
// best effort: a failing step is logged and the rest of the sequence
// still runs, so a missing selector cannot block extraction from a page
// that otherwise loaded.
type Executor struct {
	logger *utils.Logger
}

// NewExecutor creates an Executor with the given logger.
func NewExecutor(logger *utils.Logger) *Executor {
	return &Executor{logger: logger}
}

// Run applies every step in order.
func (e *Executor) Run(page browser.Page, steps []workflow.Action) {
	for _, step := range steps {
		e.logger.Debug("[executor] Executing step: %s", step)
		if err := e.apply(page, step); err != nil {
			e.logger.Error("[executor] Step %s failed: %v", step, err)
		}
	}
}

func (e *Executor) apply(page browser.Page, step workflow.Action) error {
	switch s := step.(type) {
	case workflow.Navigate:
		return page.Navigate(s.URL)
	case workflow.Scroll:
		return page.ScrollBy(s.Pixels)
	case workflow.Wait:
		return page.Sleep(time.Duration(s.Seconds) * time.Second)
	case workflow.Type:
		return page.Fill(s.Selector, s.Text)
	case workflow.KeyPress:
		return page.PressKey(s.Key)
	default:
		return fmt.Errorf("unknown action %T", step)
	}
}

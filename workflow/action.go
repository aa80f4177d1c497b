// Package workflow defines browser action sequences and compiles them
// from parsed intents.
package workflow

import "fmt"

// Action is one browser step. It is a closed sum: the only
// implementations live in this package, so the executor's type switch
// covers every case.
type Action interface {
	isAction()
	String() string
}

// Navigate loads a URL and waits for initial content.
type Navigate struct {
	URL string
}

// Scroll moves the viewport down by a pixel amount.
type Scroll struct {
	Pixels int
}

// Wait is a pure delay with no condition checked.
type Wait struct {
	Seconds int
}

// Type fills the first element matching Selector with Text.
type Type struct {
	Selector string
	Text     string
}

// KeyPress dispatches a single named key event to the page.
type KeyPress struct {
	Key string
}

func (Navigate) isAction() {}
func (Scroll) isAction()   {}
func (Wait) isAction()     {}
func (Type) isAction()     {}
func (KeyPress) isAction() {}

func (a Navigate) String() string { return fmt.Sprintf("navigate(%s)", a.URL) }
func (a Scroll) String() string   { return fmt.Sprintf("scroll(%dpx)", a.Pixels) }
func (a Wait) String() string     { return fmt.Sprintf("wait(%ds)", a.Seconds) }
func (a Type) String() string     { return fmt.Sprintf("type(%s, %q)", a.Selector, a.Text) }
func (a KeyPress) String() string { return fmt.Sprintf("keypress(%s)", a.Key) }

// SiteWorkflow is the ordered action list for one supported site. Built
// by the compiler, consumed once, then discarded.
type SiteWorkflow struct {
	Site  string
	Steps []Action
}

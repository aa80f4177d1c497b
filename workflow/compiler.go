package workflow

import (
	"net/url"
	"strings"

	"shopquery/models"
	"shopquery/sites"
	"shopquery/utils"
)

// Compiler turns a parsed intent into per-site action sequences. It never
// fails: unsupported site keys are logged and skipped, and duplicates
// produce no second entry.
type Compiler struct {
	logger *utils.Logger
}

// NewCompiler creates a Compiler with the given logger.
func NewCompiler(logger *utils.Logger) *Compiler {
	return &Compiler{logger: logger}
}

// Compile emits one SiteWorkflow per supported requested site, preserving
// request order. The output is deterministic for a given intent.
func (c *Compiler) Compile(intent *models.Intent) []SiteWorkflow {
	term := intent.SearchTerm()
	budget := intent.SearchParams.Budget

	seen := utils.NewStringSet()
	workflows := make([]SiteWorkflow, 0, len(intent.TargetWebsites))

	for _, requested := range intent.TargetWebsites {
		key := strings.ToLower(strings.TrimSpace(requested))
		if !seen.Add(key) {
			c.logger.Debug("[compiler] Duplicate site skipped: %s", requested)
			continue
		}

		site, ok := sites.Lookup(key)
		if !ok {
			c.logger.Warn("[compiler] Unsupported site: %s", requested)
			continue
		}

		steps := []Action{
			Navigate{URL: site.BaseURL + site.SearchPath + url.QueryEscape(term)},
			Scroll{Pixels: 2000},
			Wait{Seconds: 2},
		}

		if budget != "" && site.BudgetRefine {
			steps = append(steps,
				Type{Selector: site.SearchInput, Text: term + " under " + budget},
				KeyPress{Key: "Enter"},
			)
		}

		workflows = append(workflows, SiteWorkflow{Site: site.Key, Steps: steps})
		c.logger.Debug("[compiler] Compiled %d step(s) for %s", len(steps), site.Key)
	}

	c.logger.Info("[compiler] Workflow compiled for %d site(s)", len(workflows))
	return workflows
}

package workflow

import (
	"reflect"
	"strings"
	"testing"

	"shopquery/models"
	"shopquery/utils"
)

func testIntent(sites []string, params models.SearchParams) *models.Intent {
	return &models.Intent{
		QueryType:      models.QueryProductSearch,
		TargetWebsites: sites,
		SearchParams:   params,
	}
}

func TestCompileOnePerSupportedSiteInOrder(t *testing.T) {
	c := NewCompiler(utils.NewLogger())
	intent := testIntent([]string{"amazon", "flipkart"}, models.SearchParams{Category: "laptops"})

	wfs := c.Compile(intent)
	if len(wfs) != 2 {
		t.Fatalf("workflows: got %d, want 2", len(wfs))
	}
	if wfs[0].Site != "amazon" || wfs[1].Site != "flipkart" {
		t.Errorf("request order not preserved: %s, %s", wfs[0].Site, wfs[1].Site)
	}
}

func TestCompileSkipsUnsupportedSites(t *testing.T) {
	c := NewCompiler(utils.NewLogger())
	intent := testIntent([]string{"ebay", "amazon", "walmart"}, models.SearchParams{Category: "laptops"})

	wfs := c.Compile(intent)
	if len(wfs) != 1 {
		t.Fatalf("workflows: got %d, want 1", len(wfs))
	}
	if wfs[0].Site != "amazon" {
		t.Errorf("site: got %s, want amazon", wfs[0].Site)
	}
}

func TestCompileDropsDuplicateSites(t *testing.T) {
	c := NewCompiler(utils.NewLogger())
	intent := testIntent([]string{"amazon", "Amazon", "AMAZON"}, models.SearchParams{Category: "laptops"})

	wfs := c.Compile(intent)
	if len(wfs) != 1 {
		t.Errorf("workflows: got %d, want 1", len(wfs))
	}
}

func TestCompileBaseSteps(t *testing.T) {
	c := NewCompiler(utils.NewLogger())
	intent := testIntent([]string{"amazon"}, models.SearchParams{Category: "laptops"})

	steps := c.Compile(intent)[0].Steps
	if len(steps) != 3 {
		t.Fatalf("steps: got %d, want 3", len(steps))
	}

	nav, ok := steps[0].(Navigate)
	if !ok {
		t.Fatalf("step 0: got %T, want Navigate", steps[0])
	}
	if !strings.Contains(nav.URL, "laptops") {
		t.Errorf("navigate URL should carry the search term: %s", nav.URL)
	}
	if scroll, ok := steps[1].(Scroll); !ok || scroll.Pixels != 2000 {
		t.Errorf("step 1: got %v, want Scroll{2000}", steps[1])
	}
	if wait, ok := steps[2].(Wait); !ok || wait.Seconds != 2 {
		t.Errorf("step 2: got %v, want Wait{2}", steps[2])
	}
}

func TestCompilePrefersSpecificProductOverCategory(t *testing.T) {
	c := NewCompiler(utils.NewLogger())
	intent := testIntent([]string{"amazon"}, models.SearchParams{
		Category:        "laptops",
		SpecificProduct: "thinkpad x1",
	})

	nav := c.Compile(intent)[0].Steps[0].(Navigate)
	if !strings.Contains(nav.URL, "thinkpad") {
		t.Errorf("navigate URL should use specific_product, got %s", nav.URL)
	}
}

func TestCompileFlipkartBudgetSuffix(t *testing.T) {
	c := NewCompiler(utils.NewLogger())
	intent := testIntent([]string{"amazon", "flipkart"}, models.SearchParams{
		Category: "laptops",
		Budget:   "₹50,000",
	})

	wfs := c.Compile(intent)

	// Amazon gets no refinement.
	if got := len(wfs[0].Steps); got != 3 {
		t.Errorf("amazon steps: got %d, want 3", got)
	}

	// Flipkart ends with exactly Type then KeyPress(Enter).
	steps := wfs[1].Steps
	if len(steps) != 5 {
		t.Fatalf("flipkart steps: got %d, want 5", len(steps))
	}
	typ, ok := steps[3].(Type)
	if !ok {
		t.Fatalf("step 3: got %T, want Type", steps[3])
	}
	if !strings.Contains(typ.Text, "laptops") || !strings.Contains(typ.Text, "₹50,000") {
		t.Errorf("refinement text should carry term and budget: %q", typ.Text)
	}
	if press, ok := steps[4].(KeyPress); !ok || press.Key != "Enter" {
		t.Errorf("step 4: got %v, want KeyPress{Enter}", steps[4])
	}
}

func TestCompileNoBudgetNoSuffix(t *testing.T) {
	c := NewCompiler(utils.NewLogger())
	intent := testIntent([]string{"flipkart"}, models.SearchParams{Category: "laptops"})

	if got := len(c.Compile(intent)[0].Steps); got != 3 {
		t.Errorf("flipkart steps without budget: got %d, want 3", got)
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	c := NewCompiler(utils.NewLogger())
	intent := testIntent([]string{"amazon", "flipkart"}, models.SearchParams{
		Category: "laptops",
		Budget:   "₹50,000",
	})

	first := c.Compile(intent)
	second := c.Compile(intent)
	if !reflect.DeepEqual(first, second) {
		t.Error("compiling the same intent twice should yield identical workflows")
	}
}

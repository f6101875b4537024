package verify

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/pkg/errors"
)

// Report collects the results of a verification run
type Report struct {
	Results []CaseResult
}

// Passed reports whether every attempted case passed
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed() {
			return false
		}
	}
	return true
}

// Markdown renders the report as a markdown table
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("## Diagnostics\n\n")
	b.WriteString("| Case | Result | Detail |\n")
	b.WriteString("|---|---|---|\n")
	for _, res := range r.Results {
		result, detail := "pass", ""
		if !res.Passed() {
			result = "FAIL"
			detail = strings.ReplaceAll(res.Err.Error(), "|", "\\|")
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", res.Name, result, detail)
	}
	return b.String()
}

// Render renders the markdown report for a terminal using glamour
func (r *Report) Render() (string, error) {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", errors.Wrap(err, "[Report.Render] failed to create renderer")
	}
	out, err := renderer.Render(r.Markdown())
	if err != nil {
		return "", errors.Wrap(err, "[Report.Render] failed to render")
	}
	return out, nil
}

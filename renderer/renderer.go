// Package renderer turns debtbook values into markdown reports: the debt
// register, a single year ledger, and the amortization schedule of one debt.
// Reports only ever show settled numbers; formulas stay a storage concern.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderRegister renders the master-list view to a markdown string.
func RenderRegister(v *RegisterView) string {
	partials := map[string]string{
		"register_rows": "register_rows.md",
	}
	return renderTemplate("register", "register.md", partials, v)
}

// RenderLedger renders a year-ledger view to a markdown string.
func RenderLedger(v *LedgerView) string {
	partials := map[string]string{
		"ledger_issued": "ledger_issued.md",
		"ledger_debts":  "ledger_debts.md",
	}
	return renderTemplate("ledger", "ledger.md", partials, v)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

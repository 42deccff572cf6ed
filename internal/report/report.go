// Package report renders diff artifacts for evolved implementations: a
// unified text diff, a markdown document embedding it, and an HTML page
// rendered from the markdown.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"gitlab.com/golang-commonmark/markdown"
	"go.trai.ch/evolux/internal/core/domain"
	"go.trai.ch/zerr"
)

// Unified produces a unified diff between the original body and the evolved
// source for a call site. Decorator lines directly above the original def
// are carried into the "after" side so the diff never suggests they were
// removed; the cached file itself stays undecorated.
func Unified(site domain.CallSite, before, after string, generatedAt time.Time) (string, error) {
	beforeLines := splitKeepEnds(before)
	afterLines := splitKeepEnds(after)
	if decor := decoratorBlock(before); len(decor) > 0 {
		afterLines = append(decor, afterLines...)
	}

	ts := generatedAt.UTC().Format("2006-01-02T15:04:05") + "Z"
	diff := difflib.UnifiedDiff{
		A:        beforeLines,
		B:        afterLines,
		FromFile: "before:" + site.String(),
		ToFile:   "after:" + site.String(),
		FromDate: ts,
		ToDate:   ts,
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", zerr.Wrap(err, "failed to compute unified diff")
	}
	return text, nil
}

// Markdown wraps a unified diff in a small markdown document.
func Markdown(site domain.CallSite, diffText string, generatedAt time.Time) string {
	ts := generatedAt.UTC().Format("2006-01-02T15:04:05") + "Z"
	var b strings.Builder
	fmt.Fprintf(&b, "# evolux diff for `%s`\n\n", site.String())
	fmt.Fprintf(&b, "_Generated: %s_\n\n", ts)
	b.WriteString("```diff\n")
	b.WriteString(diffText)
	if !strings.HasSuffix(diffText, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}

// HTML renders the markdown artifact into a standalone HTML page.
func HTML(site domain.CallSite, markdownText string) string {
	md := markdown.New(markdown.XHTMLOutput(true), markdown.Typographer(false))
	body := md.RenderToString([]byte(markdownText))

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\"/>\n")
	fmt.Fprintf(&b, "<title>evolux diff for %s</title>\n", site.String())
	b.WriteString("<style>body{font-family:monospace;margin:2em;}pre{background:#f6f7fb;padding:1em;overflow-x:auto;}</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// decoratorBlock collects the contiguous @-prefixed lines directly above
// the first def line of src, preserving line endings.
func decoratorBlock(src string) []string {
	lines := splitKeepEnds(src)

	defIdx := -1
	for i, ln := range lines {
		if strings.HasPrefix(strings.TrimLeft(ln, " \t"), "def ") {
			defIdx = i
			break
		}
	}
	if defIdx < 0 {
		return nil
	}

	var decs []string
	for j := defIdx - 1; j >= 0; j-- {
		if !strings.HasPrefix(strings.TrimLeft(lines[j], " \t"), "@") {
			break
		}
		decs = append(decs, lines[j])
	}
	// Collected bottom-up, restore source order.
	for i, j := 0, len(decs)-1; i < j; i, j = i+1, j-1 {
		decs[i], decs[j] = decs[j], decs[i]
	}
	return decs
}

// splitKeepEnds normalizes newlines and splits src into lines that keep
// their trailing newline, matching unified diff expectations.
func splitKeepEnds(src string) []string {
	normalized := strings.ReplaceAll(src, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return difflib.SplitLines(normalized)
}

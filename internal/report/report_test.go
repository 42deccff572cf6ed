package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/evolux/internal/core/domain"
	"go.trai.ch/evolux/internal/report"
)

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestUnified(t *testing.T) {
	t.Parallel()

	site := domain.CallSite{Module: "demo", Function: "add"}
	before := "def add(x, y):\n    raise NotImplementedError\n"
	after := "def add(x, y):\n    return x + y\n"

	diff, err := report.Unified(site, before, after, fixedTime)
	require.NoError(t, err)

	assert.Contains(t, diff, "--- before:demo.add")
	assert.Contains(t, diff, "+++ after:demo.add")
	assert.Contains(t, diff, "-    raise NotImplementedError")
	assert.Contains(t, diff, "+    return x + y")
}

func TestUnified_KeepsDecoratorLines(t *testing.T) {
	t.Parallel()

	site := domain.CallSite{Module: "demo", Function: "add"}
	before := "@evolve\ndef add(x, y):\n    raise NotImplementedError\n"
	after := "def add(x, y):\n    return x + y\n"

	diff, err := report.Unified(site, before, after, fixedTime)
	require.NoError(t, err)

	// The decorator exists on both sides, so it never shows as removed.
	assert.NotContains(t, diff, "-@evolve")
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	site := domain.CallSite{Module: "demo", Function: "add"}
	diffText := "--- before:demo.add\n+++ after:demo.add\n"

	got := report.Markdown(site, diffText, fixedTime)

	g := goldie.New(t)
	g.Assert(t, "markdown_basic", []byte(got))
}

func TestHTML(t *testing.T) {
	t.Parallel()

	site := domain.CallSite{Module: "demo", Function: "add"}
	md := report.Markdown(site, "--- a\n+++ b\n", fixedTime)

	html := report.HTML(site, md)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>evolux diff for demo.add</title>")
	assert.Contains(t, html, "evolux diff for")
	assert.True(t, strings.HasSuffix(html, "</html>\n"))
}

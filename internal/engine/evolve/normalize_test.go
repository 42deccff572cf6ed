package evolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/evolux/internal/core/domain"
	"go.trai.ch/evolux/internal/engine/evolve"
)

func TestNormalizeBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain body passes through",
			in:   "return x + y\n",
			want: "return x + y",
		},
		{
			name: "strips fences and language tag",
			in:   "```python\nreturn x + y\n```",
			want: "return x + y",
		},
		{
			name: "strips bare fences",
			in:   "```\nreturn x + y\n```",
			want: "return x + y",
		},
		{
			name: "normalizes windows newlines",
			in:   "a = 1\r\nreturn a\r\n",
			want: "a = 1\nreturn a",
		},
		{
			name: "dedents uniformly indented body",
			in:   "    a = 1\n    return a\n",
			want: "a = 1\nreturn a",
		},
		{
			name: "preserves relative indentation",
			in:   "    if x:\n        return 1\n    return 0\n",
			want: "if x:\n    return 1\nreturn 0",
		},
		{
			name: "trims surrounding blank lines",
			in:   "\n\nreturn 1\n\n",
			want: "return 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, evolve.NormalizeBody(tt.in))
		})
	}
}

func TestEnsureImports(t *testing.T) {
	t.Parallel()

	allow := []string{"json", "math", "requests"}

	t.Run("adds missing import for referenced module", func(t *testing.T) {
		t.Parallel()
		got := evolve.EnsureImports("return json.loads(s)", allow)
		assert.Equal(t, "import json\nreturn json.loads(s)", got)
	})

	t.Run("keeps existing import", func(t *testing.T) {
		t.Parallel()
		body := "import json\nreturn json.loads(s)"
		assert.Equal(t, body, evolve.EnsureImports(body, allow))
	})

	t.Run("recognizes from imports", func(t *testing.T) {
		t.Parallel()
		body := "from math import sqrt\nreturn sqrt(math.pi)"
		assert.Equal(t, body, evolve.EnsureImports(body, allow))
	})

	t.Run("ignores unreferenced modules", func(t *testing.T) {
		t.Parallel()
		body := "return x + y"
		assert.Equal(t, body, evolve.EnsureImports(body, allow))
	})
}

func TestRepairIndentation(t *testing.T) {
	t.Parallel()

	t.Run("removes stray leading indent", func(t *testing.T) {
		t.Parallel()
		got := evolve.RepairIndentation("    a = 1\n    return a")
		assert.Equal(t, "a = 1\nreturn a", got)
	})

	t.Run("flattens unexplained indent", func(t *testing.T) {
		t.Parallel()
		got := evolve.RepairIndentation("a = 1\n    b = 2\nreturn a + b")
		assert.Equal(t, "a = 1\nb = 2\nreturn a + b", got)
	})

	t.Run("keeps indent after block opener", func(t *testing.T) {
		t.Parallel()
		body := "if x:\n    return 1\nreturn 0"
		assert.Equal(t, body, evolve.RepairIndentation(body))
	})

	t.Run("keeps indent inside brackets", func(t *testing.T) {
		t.Parallel()
		body := "items = [\n    1,\n    2,\n]\nreturn items"
		assert.Equal(t, body, evolve.RepairIndentation(body))
	})

	t.Run("indents line after bare block opener", func(t *testing.T) {
		t.Parallel()
		got := evolve.RepairIndentation("if x:\nreturn 1")
		assert.Equal(t, "if x:\n    return 1", got)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, evolve.RepairIndentation("\n\n"))
	})
}

func TestWrapFunction(t *testing.T) {
	t.Parallel()

	meta := domain.FuncMeta{
		Site:      domain.CallSite{Module: "demo", Function: "add"},
		Signature: "(x, y)",
	}

	got := evolve.WrapFunction(meta, "return x + y")
	assert.Equal(t, "def add(x, y):\n    return x + y\n", got)

	t.Run("multiline body", func(t *testing.T) {
		t.Parallel()
		got := evolve.WrapFunction(meta, "a = x + y\nreturn a")
		assert.Equal(t, "def add(x, y):\n    a = x + y\n    return a\n", got)
	})

	t.Run("missing signature falls back to catch-all", func(t *testing.T) {
		t.Parallel()
		bare := domain.FuncMeta{Site: domain.CallSite{Module: "demo", Function: "f"}}
		got := evolve.WrapFunction(bare, "return 1")
		assert.Equal(t, "def f(*args, **kwargs):\n    return 1\n", got)
	})
}

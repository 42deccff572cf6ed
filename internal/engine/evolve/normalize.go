package evolve

import (
	"regexp"
	"strings"

	"go.trai.ch/evolux/internal/core/domain"
)

var (
	bodyImportRe = regexp.MustCompile(`^\s*import\s+([a-zA-Z0-9_\.]+)`)
	bodyFromRe   = regexp.MustCompile(`^\s*from\s+([a-zA-Z0-9_\.]+)\s+import\s+`)
)

// NormalizeBody cleans raw backend output into a plain function body:
// code fences and a language tag are stripped, newlines normalized,
// common indentation removed, and surrounding blank lines trimmed.
// Internal indentation is preserved.
func NormalizeBody(body string) string {
	b := strings.TrimSpace(body)
	if strings.HasPrefix(b, "```") && strings.HasSuffix(b, "```") {
		b = strings.Trim(b, "`\n")
		b = strings.TrimPrefix(b, "python\n")
	}
	b = strings.ReplaceAll(b, "\r\n", "\n")
	b = strings.ReplaceAll(b, "\r", "\n")

	b = dedent(b)

	lines := strings.Split(b, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// EnsureImports prepends "import <module>" for every allowed module the
// body references as "<module>." without importing it.
func EnsureImports(body string, allow []string) string {
	existing := make(map[string]struct{})
	for _, line := range strings.Split(body, "\n") {
		if m := bodyImportRe.FindStringSubmatch(line); m != nil {
			existing[topLevel(m[1])] = struct{}{}
		}
		if m := bodyFromRe.FindStringSubmatch(line); m != nil {
			existing[topLevel(m[1])] = struct{}{}
		}
	}

	var toAdd []string
	for _, mod := range allow {
		root := topLevel(mod)
		if _, ok := existing[root]; ok {
			continue
		}
		if strings.Contains(body, root+".") {
			toAdd = append(toAdd, "import "+root)
		}
	}

	if len(toAdd) == 0 {
		return body
	}
	return strings.Join(toAdd, "\n") + "\n" + body
}

// RepairIndentation makes a conservative, best-effort indentation fix on a
// body that failed to compile: strip surrounding blanks and a uniform
// leading indent, flatten indents that no block opener or open bracket
// explains, and indent the line after a block opener that has none.
// Relative indentation is preserved wherever possible.
func RepairIndentation(body string) string {
	b := strings.ReplaceAll(body, "\r\n", "\n")
	b = strings.ReplaceAll(b, "\r", "\n")
	lines := strings.Split(b, "\n")

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	first := lines[0]
	lead := len(first) - len(strings.TrimLeft(first, " "))
	if lead > 0 {
		prefix := strings.Repeat(" ", lead)
		for i, ln := range lines {
			if strings.HasPrefix(ln, prefix) {
				lines[i] = ln[lead:]
			} else {
				lines[i] = strings.TrimLeft(ln, "\t")
			}
		}
	}

	var out []string
	prevSig := ""
	bracketDepth := 0
	for _, ln := range lines {
		stripped := strings.TrimLeft(ln, " ")
		if stripped == "" {
			out = append(out, ln)
			continue
		}
		indent := len(ln) - len(stripped)
		allowIndent := bracketDepth > 0 ||
			(prevSig != "" && strings.HasSuffix(strings.TrimRight(prevSig, " "), ":"))
		if indent > 0 && !allowIndent {
			ln = stripped
		}
		out = append(out, ln)
		bracketDepth += bracketDelta(stripped)
		prevSig = stripped
	}

	// A block opener must be followed by an indented line.
	for i := range out {
		if !strings.HasSuffix(strings.TrimRight(out[i], " "), ":") {
			continue
		}
		j := i + 1
		for j < len(out) && strings.TrimSpace(out[j]) == "" {
			j++
		}
		if j < len(out) && !strings.HasPrefix(out[j], " ") {
			out[j] = "    " + out[j]
		}
	}
	return strings.Join(out, "\n")
}

// WrapFunction turns a normalized body into a full function definition
// using the wrap-time signature. A missing signature falls back to a
// catch-all parameter list.
func WrapFunction(meta domain.FuncMeta, body string) string {
	params := strings.TrimSpace(meta.Signature)
	params = strings.TrimPrefix(params, "(")
	params = strings.TrimSuffix(params, ")")
	if params == "" && meta.Signature == "" {
		params = "*args, **kwargs"
	}
	return "def " + meta.Site.Function + "(" + params + "):\n" + indent(body, 4) + "\n"
}

// bracketDelta counts net bracket openings on a line. Crude but workable;
// strings are not excluded.
func bracketDelta(s string) int {
	return strings.Count(s, "(") + strings.Count(s, "[") + strings.Count(s, "{") -
		strings.Count(s, ")") - strings.Count(s, "]") - strings.Count(s, "}")
}

// dedent removes the longest common leading whitespace from all non-blank
// lines.
func dedent(s string) string {
	lines := strings.Split(s, "\n")

	margin := ""
	first := true
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		lead := ln[:len(ln)-len(strings.TrimLeft(ln, " \t"))]
		if first {
			margin = lead
			first = false
			continue
		}
		for !strings.HasPrefix(lead, margin) {
			margin = margin[:len(margin)-1]
		}
	}
	if margin == "" {
		return s
	}

	for i, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		lines[i] = strings.TrimPrefix(ln, margin)
	}
	return strings.Join(lines, "\n")
}

// indent prefixes every non-blank line with n spaces.
func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		if strings.TrimSpace(ln) != "" {
			lines[i] = pad + ln
		}
	}
	return strings.Join(lines, "\n")
}

func topLevel(mod string) string {
	if idx := strings.Index(mod, "."); idx >= 0 {
		return mod[:idx]
	}
	return mod
}

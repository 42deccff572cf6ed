package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.trai.ch/evolux/internal/core/domain"
)

// buildPrompt renders the user message for one synthesis attempt: the
// function's identity and source, the failure that triggered synthesis,
// and the live call arguments.
func buildPrompt(req domain.SynthesisRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are upgrading a Python function in-place.\n\n")
	fmt.Fprintf(&b, "Function: %s%s\n", req.Meta.Site.Function, req.Meta.Signature)
	fmt.Fprintf(&b, "Docstring: %s\n\n", req.Meta.Doc)
	fmt.Fprintf(&b, "Original source:\n%s\n\n", req.Meta.Source)
	fmt.Fprintf(&b, "Last error:\n%s\n\n", req.LastError)
	fmt.Fprintf(&b, "Inputs:\nargs=%s, kwargs=%s\n\n", renderJSON(req.Args), renderJSON(req.Kwargs))

	b.WriteString("Write ONLY the function BODY (no def line). Prefer stdlib. " +
		"If you use third-party modules present in allowlist, you MUST import them explicitly at top of the body.\n")
	fmt.Fprintf(&b, "Allowed imports: %s.\n", strings.Join(req.AllowImports, ", "))
	b.WriteString("The implementation must be deterministic and side-effect minimal.\n")
	b.WriteString("The error can be caused by the function body or by incorrect arguments.\n")
	b.WriteString("If the error is in the function body, please fix it.\n")
	b.WriteString("If the error is due to invalid data in the function's arguments, add code to the " +
		"function body to correct the arguments. For example, if a URL contains extraneous characters, " +
		"the code should clean up the URL string before using it.")

	if req.Attempt > 1 {
		b.WriteString("\n\nAdditionally, sanitize and normalize incoming arguments before use; " +
			"for URL strings, strip whitespace, remove embedded newlines, collapse spaces, " +
			"and ensure the path is valid.")
	}

	return b.String()
}

// renderJSON serializes call arguments for the prompt, falling back to %v
// for values JSON cannot express.
func renderJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

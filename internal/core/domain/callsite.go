// Package domain contains the core types for evolving functions.
package domain

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// CallSite identifies a wrapped function by its module and qualified name.
// It is established once at wrap time and used as the cache key.
type CallSite struct {
	Module   string `json:"module"`
	Function string `json:"function"`
}

// String returns the dotted form, e.g. "mypkg.mymod.add".
func (c CallSite) String() string {
	return c.Module + "." + c.Function
}

// Key returns the filesystem-safe form used for cache file names,
// e.g. "mypkg_mymod__add".
func (c CallSite) Key() string {
	return SafeModule(c.Module) + "__" + c.Function
}

// SafeModule converts a dotted module name to a filesystem-safe name.
func SafeModule(module string) string {
	return strings.ReplaceAll(module, ".", "_")
}

// FuncMeta is the explicit metadata for a wrapped function, captured once at
// wrap time. It replaces runtime introspection: signature, docstring and
// source are supplied by the caller, not reflected from a live object.
type FuncMeta struct {
	Site      CallSite
	Signature string // parameter list including parentheses, e.g. "(x, y)"
	Doc       string
	Source    string // original source of the wrapped function, for prompts and diffs
	File      string // defining source file, used to derive the default cache root
}

// SignatureHash returns a stable hash of the signature the implementation
// was generated for. A cached implementation whose hash no longer matches
// the wrap-time signature is stale.
func (m FuncMeta) SignatureHash() string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(m.Site.String()+m.Signature))
}

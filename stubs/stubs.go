// Package stubs embeds the vendored type-stub tree §6's "Vendored type
// stubs" describes: used only by a static checker, never read by the
// evaluator at runtime.
package stubs

import "embed"

//go:embed VERSIONS builtins.pyi datetime.pyi
var FS embed.FS

// Names lists the vendored stub file names.
func Names() []string {
	return []string{"VERSIONS", "builtins.pyi", "datetime.pyi"}
}

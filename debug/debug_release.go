//go:build !debug

package debug

const Debug = false

// Assert is a no-op in release builds.
func Assert(condition bool, format string, args ...any) {}

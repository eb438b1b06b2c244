//go:build debug

package debug

import "fmt"

const Debug = true

// Assert panics if condition does not hold. Compiled in with the debug tag only.
func Assert(condition bool, format string, args ...any) {
	if !condition {
		panic(fmt.Sprintf(format, args...) + "\n" + Stack())
	}
}

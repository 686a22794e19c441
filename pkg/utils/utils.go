package utils

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
)

// Exit terminates the process after a fatal error. Tests replace it to
// observe fatals without leaving the test binary.
var Exit = os.Exit

func Fatal(v any) {
	fmt.Fprintf(os.Stderr, "objsec:\n\t\033[0;1;31mfatal\033[0m: %v\n", v)
	debug.PrintStack()
	Exit(1)
}

func MustNo(err error) {
	if err != nil {
		Fatal(err.Error())
	}
}

func Assert(condition bool) {
	if !condition {
		Fatal("Assert Failed")
	}
}

// HasAnyPrefix reports whether s starts with one of prefixes.
func HasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

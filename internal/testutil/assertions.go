package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks that the run logged a record containing every given
// fragment, e.g. `msg="Scenario completed."` and `steps=3`.
func AssertLogged(t *testing.T, result *HarnessResult, fragments ...string) {
	t.Helper()
	for _, line := range strings.Split(result.LogOutput, "\n") {
		if containsAll(line, fragments) {
			return
		}
	}
	require.Failf(t, "log record not found", "no log line contains all of %q", fragments)
}

func containsAll(line string, fragments []string) bool {
	for _, f := range fragments {
		if !strings.Contains(line, f) {
			return false
		}
	}
	return true
}

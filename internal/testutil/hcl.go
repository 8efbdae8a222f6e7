package testutil

import (
	"testing"
)

// RunHCLScenarioTest runs a single scenario file against the recorder
// manifest. Scenarios declare their own element types over `record` and
// any further directives they need.
func RunHCLScenarioTest(t *testing.T, scenarioHCL string) (*HarnessResult, *RecorderModule) {
	t.Helper()

	files := map[string]string{
		"modules/record/manifest.hcl": RecorderManifest,
		"scenario/main.hcl":           scenarioHCL,
	}
	recorder := &RecorderModule{}
	return RunIntegrationTest(t, files, recorder), recorder
}

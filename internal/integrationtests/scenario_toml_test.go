package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/elemdirectives/internal/testutil"
)

func TestScenario_TOML(t *testing.T) {
	t.Parallel()

	recorder := &testutil.RecorderModule{}
	result := testutil.RunIntegrationTest(t, map[string]string{
		"modules/record/manifest.hcl": testutil.RecorderManifest,
		"scenario/main.toml": `
[element_types.x-host]
attribute = "has"
directives = ["record"]

[[elements]]
name = "host"
type = "x-host"

[[elements.attributes]]
name = "has"
value = 'record="a b"'

[[steps]]
action = "mount"
element = "host"

[[steps]]
action = "expect"
element = "host"
active = ["record=a b"]

[[steps]]
action = "unmount"
element = "host"
`,
	}, recorder)
	require.NoError(t, result.Err)
	require.Equal(t, []string{"connected host record=a b", "disconnected host record=a b"}, recorder.Entries())
}

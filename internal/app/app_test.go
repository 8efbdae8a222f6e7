package app

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/elemdirectives/internal/hcl"
	"github.com/vk/elemdirectives/internal/tomlconfig"
)

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{ScenarioPath: "main.hcl", ListenPort: 8080})
	require.NoError(t, err)
	assert.Equal(t, "main.hcl", cfg.ScenarioPath)

	_, err = NewConfig(Config{})
	assert.ErrorContains(t, err, "ScenarioPath is a required")

	_, err = NewConfig(Config{ScenarioPath: "main.yaml"})
	assert.ErrorContains(t, err, `unsupported scenario file extension ".yaml"`)

	_, err = NewConfig(Config{ScenarioPath: "dir", ListenPort: 70000})
	assert.ErrorContains(t, err, "out of range")
}

func TestLoaderFor(t *testing.T) {
	assert.IsType(t, &tomlconfig.Loader{}, LoaderFor("scenario.TOML"))
	assert.IsType(t, &hcl.Loader{}, LoaderFor("scenario.hcl"))
	assert.IsType(t, &hcl.Loader{}, LoaderFor("scenarios"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestApp_RunWithCoreModules(t *testing.T) {
	scenario := writeScenario(t, `
		directive "print" {
			lifecycle {
				connected    = "PrintConnected"
				disconnected = "PrintDisconnected"
			}
		}

		element_type "x-card" {
			attribute  = "has"
			directives = ["print"]
		}

		element "card" {
			type = "x-card"
			attribute "has" {
				value = "print=hello"
			}
		}

		step "mount" "card" {}
		step "unmount" "card" {}
	`)

	var out bytes.Buffer
	a, err := NewApp(&out, &Config{ScenarioPath: scenario, LogLevel: "error"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"EmitConnected", "EmitDisconnected", "EmitValueChanged",
		"PostConnected", "PostDisconnected", "PostValueChanged",
		"PrintConnected", "PrintDisconnected", "PrintValueChanged",
	}, a.Registry().Handlers.Names())

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "card print=hello")
	assert.Contains(t, out.String(), "disconnected")
}

func TestApp_HealthAndFeedRoutes(t *testing.T) {
	a, err := NewApp(io.Discard, &Config{ScenarioPath: writeScenario(t, "")}, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(a.newMux(nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK\n", string(body))

	resp, err = http.Get(srv.URL + "/socket.io/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

package app

import (
	"path/filepath"
	"strings"

	"github.com/vk/elemdirectives/internal/config"
	"github.com/vk/elemdirectives/internal/hcl"
	"github.com/vk/elemdirectives/internal/tomlconfig"
)

// LoaderFor picks the scenario loader by file extension. Directories and
// unknown extensions use HCL.
func LoaderFor(path string) config.Loader {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return tomlconfig.NewLoader()
	}
	return hcl.NewLoader()
}

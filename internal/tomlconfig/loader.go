package tomlconfig

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vk/elemdirectives/internal/config"
	"github.com/vk/elemdirectives/internal/ctxlog"
	"github.com/vk/elemdirectives/internal/fsutil"
)

type lifecycleDoc struct {
	Connected    string `toml:"connected"`
	Disconnected string `toml:"disconnected"`
	ValueChanged string `toml:"value_changed"`
}

type directiveDoc struct {
	Description string        `toml:"description"`
	Lifecycle   *lifecycleDoc `toml:"lifecycle"`
}

type elementTypeDoc struct {
	Attribute  string   `toml:"attribute"`
	Directives []string `toml:"directives"`
}

type attributeDoc struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

type elementDoc struct {
	Name       string         `toml:"name"`
	Type       string         `toml:"type"`
	Attributes []attributeDoc `toml:"attributes"`
}

type stepDoc struct {
	Action    string   `toml:"action"`
	Element   string   `toml:"element"`
	Attribute string   `toml:"attribute"`
	Value     string   `toml:"value"`
	Active    []string `toml:"active"`
}

type document struct {
	Directives   map[string]directiveDoc   `toml:"directives"`
	ElementTypes map[string]elementTypeDoc `toml:"element_types"`
	Elements     []elementDoc              `toml:"elements"`
	Steps        []stepDoc                 `toml:"steps"`
}

// Loader implements config.Loader for `.toml` files.
type Loader struct{}

// NewLoader creates a new TOML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extension implements config.Loader.
func (l *Loader) Extension() string { return ".toml" }

// Load decodes every TOML file found under paths and merges them.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFiles(paths, l.Extension())
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered TOML files.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		part, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(part); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}
	return model, nil
}

func loadFile(path string) (*config.Model, error) {
	var doc document
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	model := config.NewModel()
	for name, d := range doc.Directives {
		def := &config.DirectiveDefinition{Name: name, Description: d.Description}
		if d.Lifecycle != nil {
			def.Lifecycle = &config.Lifecycle{
				Connected:    d.Lifecycle.Connected,
				Disconnected: d.Lifecycle.Disconnected,
				ValueChanged: d.Lifecycle.ValueChanged,
			}
		}
		model.Directives[name] = def
	}
	for name, et := range doc.ElementTypes {
		model.ElementTypes[name] = &config.ElementType{
			Name:       name,
			Attribute:  et.Attribute,
			Directives: et.Directives,
		}
	}
	for i, el := range doc.Elements {
		if el.Name == "" {
			return nil, fmt.Errorf("%s: elements[%d]: name is required", path, i)
		}
		out := &config.Element{Name: el.Name, Type: el.Type}
		for _, a := range el.Attributes {
			out.Attributes = append(out.Attributes, config.Attribute{Name: a.Name, Value: a.Value})
		}
		model.Scenario.Elements = append(model.Scenario.Elements, out)
	}
	for i, s := range doc.Steps {
		step := &config.Step{
			Action:    config.Action(s.Action),
			Element:   s.Element,
			Attribute: s.Attribute,
			Value:     s.Value,
			Active:    s.Active,
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: steps[%d]: %w", path, i, err)
		}
		model.Scenario.Steps = append(model.Scenario.Steps, step)
	}
	return model, nil
}

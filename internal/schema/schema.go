package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Manifest Schemas ---

// Lifecycle maps a directive's hooks to registered Go handler names.
type Lifecycle struct {
	Connected    string `hcl:"connected,optional"`
	Disconnected string `hcl:"disconnected,optional"`
	ValueChanged string `hcl:"value_changed,optional"`
}

// Directive represents a `directive` manifest block.
type Directive struct {
	Name        string     `hcl:"name,label"`
	Description string     `hcl:"description,optional"`
	Lifecycle   *Lifecycle `hcl:"lifecycle,block"`
}

// ElementType represents an `element_type` block.
type ElementType struct {
	Name       string   `hcl:"name,label"`
	Attribute  string   `hcl:"attribute,optional"`
	Directives []string `hcl:"directives,optional"`
}

// --- Scenario Schemas ---

// Variable represents a `variable` block. Its default is exposed to
// expressions as `var.<name>`.
type Variable struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
}

// Attribute represents an `attribute` block inside an element. Blocks keep
// their source order, which element-attributes mode depends on.
type Attribute struct {
	Name  string         `hcl:"name,label"`
	Value hcl.Expression `hcl:"value,optional"`
}

// Element represents an `element` block.
type Element struct {
	Name       string       `hcl:"name,label"`
	Type       string       `hcl:"type"`
	Attributes []*Attribute `hcl:"attribute,block"`
}

// Step represents a `step "<action>" "<element>"` block.
type Step struct {
	Action    string         `hcl:"action,label"`
	Element   string         `hcl:"element,label"`
	Attribute string         `hcl:"attribute,optional"`
	Value     hcl.Expression `hcl:"value,optional"`
	Active    []string       `hcl:"active,optional"`
}

// File represents the top-level structure of any configuration file. Any
// block may appear in any file; unknown blocks are rejected.
type File struct {
	Directives   []*Directive   `hcl:"directive,block"`
	ElementTypes []*ElementType `hcl:"element_type,block"`
	Variables    []*Variable    `hcl:"variable,block"`
	Elements     []*Element     `hcl:"element,block"`
	Steps        []*Step        `hcl:"step,block"`
}

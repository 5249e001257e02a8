// Package fieldspec loads dropdown field definitions from YAML.
//
// A definition file lists fields the way a component declares its dropdown
// inputs: options, per-option metadata kept in file order, free-text
// (combobox) mode, and an optional creation dialog.
package fieldspec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	appErrors "optionfield/internal/errors"
)

// Layout is the list layout a field asks for.
type Layout string

const (
	LayoutPlain    Layout = "plain"
	LayoutDetailed Layout = "detailed"
)

// Attr is one metadata attribute. Value is a string, an int64, a float64,
// a bool, or nil for an explicit null.
type Attr struct {
	Key   string
	Value any
}

// OptionMetadata annotates the option at the same index.
type OptionMetadata struct {
	Icon  string
	Attrs []Attr
}

// DialogField is one input of a creation dialog.
type DialogField struct {
	Name        string   `yaml:"name"`
	Label       string   `yaml:"label"`
	Placeholder string   `yaml:"placeholder"`
	Options     []string `yaml:"options"`
}

// DialogInputs describes the creation dialog of a field.
type DialogInputs struct {
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Fields      []DialogField `yaml:"fields"`
}

// Field is a single dropdown definition.
type Field struct {
	Name            string           `yaml:"name"`
	DisplayName     string           `yaml:"display_name"`
	Info            string           `yaml:"info"`
	Options         []string         `yaml:"options"`
	OptionsMetadata []OptionMetadata `yaml:"options_metadata"`
	Combobox        bool             `yaml:"combobox"`
	Value           string           `yaml:"value"`
	Disabled        bool             `yaml:"disabled"`
	Loading         bool             `yaml:"loading"`
	DialogInputs    *DialogInputs    `yaml:"dialog_inputs"`

	// Warnings lists problems that do not stop the field from rendering,
	// such as metadata that is not aligned with the options.
	Warnings []string `yaml:"-"`
}

// Label returns the display name, falling back to the field name.
func (f Field) Label() string {
	if strings.TrimSpace(f.DisplayName) != "" {
		return f.DisplayName
	}
	return f.Name
}

// Layout returns LayoutDetailed when the field declares a creation dialog.
func (f Field) Layout() Layout {
	if f.DialogInputs != nil {
		return LayoutDetailed
	}
	return LayoutPlain
}

type document struct {
	Fields []Field `yaml:"fields"`
}

// Load reads and parses a definition file.
func Load(path string) ([]Field, error) {
	//nolint:gosec // G304: the path comes from the user's configuration
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("field definitions %s not found", path), err)
	}
	if err != nil {
		return nil, fmt.Errorf("read field definitions: %w", err)
	}
	fields, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fields, nil
}

// Parse decodes and validates field definitions.
func Parse(data []byte) ([]Field, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, appErrors.New(appErrors.CodeParseFailed, "parse field definitions", err)
	}
	if err := validate(doc.Fields); err != nil {
		return nil, err
	}
	for i := range doc.Fields {
		doc.Fields[i].Warnings = lint(doc.Fields[i])
	}
	return doc.Fields, nil
}

func validate(fields []Field) error {
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return invalidField("field %d: name is required", i)
		}
		if seen[name] {
			return invalidField("duplicate field name %q", name)
		}
		seen[name] = true

		if f.DialogInputs == nil {
			continue
		}
		dialogSeen := make(map[string]bool, len(f.DialogInputs.Fields))
		for j, df := range f.DialogInputs.Fields {
			dn := strings.TrimSpace(df.Name)
			if dn == "" {
				return invalidField("field %q: dialog input %d: name is required", name, j)
			}
			if dialogSeen[dn] {
				return invalidField("field %q: duplicate dialog input %q", name, dn)
			}
			dialogSeen[dn] = true
		}
	}
	return nil
}

func lint(f Field) []string {
	var warnings []string
	if n, m := len(f.Options), len(f.OptionsMetadata); m > 0 && m != n {
		warnings = append(warnings, fmt.Sprintf("options_metadata has %d entries for %d options", m, n))
	}
	seen := make(map[string]bool, len(f.Options))
	for _, o := range f.Options {
		if seen[o] {
			warnings = append(warnings, fmt.Sprintf("option %q is listed more than once", o))
		}
		seen[o] = true
	}
	if f.Value != "" && !f.Combobox && !slices.Contains(f.Options, f.Value) {
		warnings = append(warnings, fmt.Sprintf("value %q is not one of the options", f.Value))
	}
	return warnings
}

func invalidField(format string, args ...any) error {
	return appErrors.New(appErrors.CodeInvalidField, fmt.Sprintf(format, args...), nil)
}

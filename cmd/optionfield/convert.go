package main

import (
	"optionfield/internal/fieldspec"
	"optionfield/internal/ui"
)

// dropdownConfig maps a field definition onto the widget configuration.
func dropdownConfig(f fieldspec.Field, width, maxVisible int) ui.DropdownConfig {
	cfg := ui.DropdownConfig{
		ID:         f.Name,
		Name:       f.Name,
		Layout:     ui.LayoutPlain,
		FreeText:   f.Combobox,
		Width:      width,
		MaxVisible: maxVisible,
	}
	if f.Layout() == fieldspec.LayoutDetailed {
		cfg.Layout = ui.LayoutDetailed
		cfg.CreateDialog = dialogSpec(f.DialogInputs)
	}
	return cfg
}

// dropdownProps copies the caller-owned inputs out of a definition.
func dropdownProps(f fieldspec.Field) ui.DropdownProps {
	return ui.DropdownProps{
		Options:  append([]string(nil), f.Options...),
		Metadata: convertMetadata(f.OptionsMetadata),
		Value:    f.Value,
		Disabled: f.Disabled,
		Loading:  f.Loading,
	}
}

func convertMetadata(in []fieldspec.OptionMetadata) []ui.OptionMetadata {
	if in == nil {
		return nil
	}
	out := make([]ui.OptionMetadata, len(in))
	for i, m := range in {
		out[i].Icon = m.Icon
		if len(m.Attrs) == 0 {
			continue
		}
		out[i].Attrs = make([]ui.MetadataAttr, len(m.Attrs))
		for j, a := range m.Attrs {
			out[i].Attrs[j] = ui.MetadataAttr{Key: a.Key, Value: a.Value}
		}
	}
	return out
}

func dialogSpec(in *fieldspec.DialogInputs) *ui.DialogSpec {
	if in == nil {
		return nil
	}
	spec := &ui.DialogSpec{
		Title:       in.Title,
		Description: in.Description,
		Fields:      make([]ui.DialogField, len(in.Fields)),
	}
	for i, f := range in.Fields {
		spec.Fields[i] = ui.DialogField{
			Name:        f.Name,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Options:     append([]string(nil), f.Options...),
		}
	}
	return spec
}

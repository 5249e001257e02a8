package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"
)

// MetadataAttr is one displayable attribute of an option. Value is a string or
// a number; nil values are not rendered.
type MetadataAttr struct {
	Key   string
	Value any
}

// OptionMetadata annotates the option at the same index in the option list.
type OptionMetadata struct {
	Icon  string
	Attrs []MetadataAttr
}

// IsZero reports whether the metadata carries nothing to render.
func (m OptionMetadata) IsZero() bool {
	return m.Icon == "" && len(m.Attrs) == 0
}

// Summary renders the attributes as "<value> <key>" pairs joined with dots,
// e.g. "3 collections • 1200 records".
func (m OptionMetadata) Summary() string {
	parts := make([]string, 0, len(m.Attrs))
	for _, a := range m.Attrs {
		if a.Value == nil || a.Key == "" {
			continue
		}
		v := fmt.Sprint(a.Value)
		if v == "" {
			continue
		}
		parts = append(parts, v+" "+a.Key)
	}
	return strings.Join(parts, " • ")
}

// summaryFit truncates the summary to width display cells.
func (m OptionMetadata) summaryFit(width int) string {
	s := m.Summary()
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// MetadataAt returns the metadata for index i. Out-of-range indexes, including
// negative ones and misaligned metadata slices, report no metadata.
func MetadataAt(meta []OptionMetadata, i int) (OptionMetadata, bool) {
	if i < 0 || i >= len(meta) {
		return OptionMetadata{}, false
	}
	return meta[i], true
}

func cloneMetadata(meta []OptionMetadata) []OptionMetadata {
	if meta == nil {
		return nil
	}
	out := make([]OptionMetadata, len(meta))
	for i, m := range meta {
		out[i] = OptionMetadata{Icon: m.Icon}
		if m.Attrs != nil {
			out[i].Attrs = append([]MetadataAttr(nil), m.Attrs...)
		}
	}
	return out
}

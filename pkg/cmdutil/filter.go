package cmdutil

import "github.com/go-go-golems/anki-csv-uploader/pkg/notes"

// BuildSelectorSet returns a set of non-empty selector strings for quick membership checks.
func BuildSelectorSet(selectors []string) map[string]struct{} {
	set := make(map[string]struct{}, len(selectors))
	for _, s := range selectors {
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}

// FilterMappings restricts a column-to-field table to the entries whose
// column or field name matches one of the selectors, preserving table order.
// When selectors is empty or all selectors are blank, the table is returned
// unchanged.
func FilterMappings(table notes.Mappings, selectors []string) notes.Mappings {
	set := BuildSelectorSet(selectors)
	if len(set) == 0 {
		return table
	}
	result := make(notes.Mappings, 0, len(table))
	for _, cm := range table {
		if _, ok := set[cm.Column]; ok {
			result = append(result, cm)
			continue
		}
		if _, ok := set[cm.Field]; ok {
			result = append(result, cm)
		}
	}
	return result
}

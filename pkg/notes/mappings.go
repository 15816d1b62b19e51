package notes

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ColumnMapping binds one input column to one note field.
type ColumnMapping struct {
	Column string
	Field  string
}

// Mappings is the ordered column-to-field table. Order is the order of the
// entries in the config file: when two columns map to the same field, the
// later entry wins.
type Mappings []ColumnMapping

// UnmarshalYAML decodes the table from a YAML mapping node, preserving the
// key order of the document instead of collapsing into an unordered map.
func (m *Mappings) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("column mapping must be a YAML mapping of column: field pairs")
	}
	out := make(Mappings, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("column %q must map to a field name, got a %v node", key.Value, value.Kind)
		}
		out = append(out, ColumnMapping{Column: key.Value, Field: value.Value})
	}
	*m = out
	return nil
}

// Columns returns the source column names in table order.
func (m Mappings) Columns() []string {
	cols := make([]string, 0, len(m))
	for _, cm := range m {
		cols = append(cols, cm.Column)
	}
	return cols
}

// Fields returns the target field names in table order.
func (m Mappings) Fields() []string {
	fields := make([]string, 0, len(m))
	for _, cm := range m {
		fields = append(fields, cm.Field)
	}
	return fields
}

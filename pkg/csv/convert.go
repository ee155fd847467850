// Package csv provides conversion between AST nodes and Go native types.
package csv

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// NodeToInterface converts an AST node to native Go types.
//
// For CSV, this converts:
//   - *ast.ArrayDataNode (file) → [][]string (slice of records)
//   - *ast.ArrayDataNode (record) → []string (slice of fields)
//   - *ast.LiteralNode (field) → string (field value)
//
// An empty array is treated as an empty file.
//
// Example:
//
//	node, _ := csv.Parse("name,age\nAlice,30\n")
//	data := csv.NodeToInterface(node)
//	// data is [][]string{{"name","age"}, {"Alice","30"}}
func NodeToInterface(node ast.SchemaNode) interface{} {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return literalString(n)

	case *ast.ArrayDataNode:
		elements := n.Elements()
		if len(elements) == 0 {
			return [][]string{}
		}

		if _, ok := elements[0].(*ast.ArrayDataNode); ok {
			records := make([][]string, len(elements))
			for i, elem := range elements {
				if record, ok := NodeToInterface(elem).([]string); ok {
					records[i] = record
				} else {
					records[i] = []string{}
				}
			}
			return records
		}

		fields := make([]string, len(elements))
		for i, elem := range elements {
			if lit, ok := elem.(*ast.LiteralNode); ok {
				fields[i] = literalString(lit)
			}
		}
		return fields

	default:
		return nil
	}
}

func literalString(n *ast.LiteralNode) string {
	if s, ok := n.Value().(string); ok {
		return s
	}
	if n.Value() == nil {
		return ""
	}
	return fmt.Sprintf("%v", n.Value())
}

// NodeToRecords converts an AST node to a slice of string records.
// A single record node is wrapped into a one-record table.
//
// Example:
//
//	node, _ := csv.Parse("name,age\nAlice,30\n")
//	records := csv.NodeToRecords(node)
//	// records is [][]string{{"name","age"}, {"Alice","30"}}
func NodeToRecords(node ast.SchemaNode) [][]string {
	switch data := NodeToInterface(node).(type) {
	case [][]string:
		return data
	case []string:
		return [][]string{data}
	default:
		return [][]string{}
	}
}

// RecordsToNode converts a slice of string records to an AST node.
//
// Example:
//
//	records := [][]string{
//	    {"name", "age"},
//	    {"Alice", "30"},
//	}
//	node, _ := csv.RecordsToNode(records)
func RecordsToNode(records [][]string) (ast.SchemaNode, error) {
	return recordsNode(records), nil
}

func recordsNode(records [][]string) *ast.ArrayDataNode {
	// Nodes created programmatically carry no source position.
	pos := ast.Position{}
	nodes := make([]ast.SchemaNode, len(records))
	for i, record := range records {
		fields := make([]ast.SchemaNode, len(record))
		for j, field := range record {
			fields[j] = ast.NewLiteralNode(field, pos)
		}
		nodes[i] = ast.NewArrayDataNode(fields, pos)
	}
	return ast.NewArrayDataNode(nodes, pos)
}

// nodeRecords is the strict form of NodeToRecords: every level must have
// the exact node type a parsed file has.
func nodeRecords(node ast.SchemaNode) ([][]string, error) {
	arrayNode, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}

	records := make([][]string, 0, len(arrayNode.Elements()))
	for _, elem := range arrayNode.Elements() {
		recordNode, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("expected record to be *ast.ArrayDataNode, got %T", elem)
		}

		fields := make([]string, 0, len(recordNode.Elements()))
		for _, fieldNode := range recordNode.Elements() {
			literalNode, ok := fieldNode.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("expected field to be *ast.LiteralNode, got %T", fieldNode)
			}
			value, ok := literalNode.Value().(string)
			if !ok {
				return nil, fmt.Errorf("expected field value to be string, got %T", literalNode.Value())
			}
			fields = append(fields, value)
		}
		records = append(records, fields)
	}
	return records, nil
}

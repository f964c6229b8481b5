package flow

import "textpager/document"

// Layout node variants.
// ENUM(text, container, table, row, cell, figure, floater)
type NodeKind int

// What happened to node since the last format pass.
// ENUM(none, new, inside)
type UpdateKind int

// nodeKind maps document element to node variant. Row groups never get nodes
// of their own, rows are flattened into the table.
func nodeKind(el *document.Element) NodeKind {
	switch el.Kind() {
	case document.KindParagraph:
		return NodeKindText
	case document.KindTable:
		return NodeKindTable
	case document.KindTableRow:
		return NodeKindRow
	case document.KindTableCell:
		return NodeKindCell
	case document.KindFigure:
		return NodeKindFigure
	case document.KindFloater:
		return NodeKindFloater
	case document.KindFlowDocument, document.KindSection, document.KindList, document.KindListItem:
		return NodeKindContainer
	default:
		// this should never happen
		panic("no layout node for " + el.Kind().String())
	}
}

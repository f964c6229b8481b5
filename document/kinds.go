package document

// Kind of the document element, names match XML element names of the flow
// document dialect (first letter lowercased).
// ENUM(flowDocument, section, paragraph, list, listItem, table, tableRowGroup, tableRow, tableCell, figure, floater)
type Kind int

// IsBlock reports whether element participates in block flow of its parent.
func (k Kind) IsBlock() bool {
	switch k {
	case KindSection, KindParagraph, KindList, KindTable, KindFigure, KindFloater:
		return true
	default:
		return false
	}
}

// HasText reports whether element holds text instead of child elements.
func (k Kind) HasText() bool {
	return k == KindParagraph
}

// Accepts checks whether element of kind child may be placed directly into
// element of kind k.
func (k Kind) Accepts(child Kind) bool {
	switch k {
	case KindFlowDocument, KindSection, KindListItem, KindTableCell, KindFigure, KindFloater:
		return child.IsBlock()
	case KindList:
		return child == KindListItem
	case KindTable:
		return child == KindTableRowGroup || child == KindTableRow
	case KindTableRowGroup:
		return child == KindTableRow
	case KindTableRow:
		return child == KindTableCell
	default:
		return false
	}
}

// Kind of a document change notification.
// ENUM(added, removed, propertyModified)
type ChangeKind int

// Side of the track floater is attached to.
// ENUM(none, left, right)
type FloatSide int

// Package common keeps enums shared between configuration, layout core and
// command line tooling. They live separately so low level packages do not
// have to depend on configuration.
package common

// Progression of lines and columns on a page.
// ENUM(ltr, rtl)
type FlowDirection int

func (d FlowDirection) IsRTL() bool {
	return d == FlowDirectionRtl
}

// Page geometry mode: fixed page height or unbounded (continuous) page.
// ENUM(finite, bottomless)
type FormatMode int

func (m FormatMode) IsFinite() bool {
	return m == FormatModeFinite
}

// Output format for page reports.
// ENUM(yaml, text)
type ReportFormat int

func (f ReportFormat) Ext() string {
	switch f {
	case ReportFormatYaml:
		return ".yaml"
	case ReportFormatText:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported report format requested")
	}
}

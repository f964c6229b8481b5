package config

// DumpKind is section of debug report layout dumps are kept in.
// ENUM(pages, dirty, elements, styles)
type DumpKind int

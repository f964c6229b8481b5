package css

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "always", "1em 2em")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "avoid", "left", "rtl", etc.
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	// handles "0" case
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Pixels converts length to layout units (CSS pixels). Relative em and rem
// units are resolved against em. Percentages and unknown units cannot be
// resolved without containing block and are reported as not ok.
func (v Value) Pixels(em float64) (int, bool) {
	if !v.IsNumeric() {
		return 0, false
	}
	var px float64
	switch v.Unit {
	case "", "px":
		px = v.Value
	case "pt":
		px = v.Value * 96 / 72
	case "pc":
		px = v.Value * 16
	case "in":
		px = v.Value * 96
	case "cm":
		px = v.Value * 96 / 2.54
	case "mm":
		px = v.Value * 96 / 25.4
	case "em", "rem":
		px = v.Value * em
	default:
		return 0, false
	}
	return int(math.Round(px)), true
}

// Parts splits multi-value declaration ("1em 2em") into separate values.
func (v Value) Parts() []Value {
	fields := strings.Fields(v.Raw)
	if len(fields) <= 1 {
		return []Value{v}
	}
	parts := make([]Value, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, ParseValue(f))
	}
	return parts
}

// ParseValue parses a single value token without running full tokenizer.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	val := Value{Raw: s}
	if s == "" {
		return val
	}
	if strings.HasSuffix(s, "%") {
		if n, unit := parseDimension(strings.TrimSuffix(s, "%")); unit == "" {
			val.Value, val.Unit = n, "%"
			return val
		}
	}
	n, unit := parseDimension(s)
	if unit == "" && !val.IsNumeric() {
		val.Keyword = strings.ToLower(s)
		return val
	}
	val.Value, val.Unit = n, unit
	return val
}

// Selector represents a parsed CSS selector with its components.
type Selector struct {
	Raw      string    // Original selector string
	Element  string    // Element name (e.g., "paragraph", "table") or empty
	Class    string    // Class name without dot or empty
	ID       string    // Id without hash or empty
	Ancestor *Selector // Ancestor selector for descendant selectors ("list paragraph" -> Ancestor is "list")
}

// IsSimple returns true if this is a simple selector (element, class, id or
// their combination).
func (s Selector) IsSimple() bool {
	return s.Element != "" || s.Class != "" || s.ID != ""
}

// IsDescendant returns true if this is a descendant selector.
func (s Selector) IsDescendant() bool {
	return s.Ancestor != nil
}

// Specificity orders selectors the CSS way: ids, then classes, then
// element names. Ancestors add to it.
func (s Selector) Specificity() int {
	n := 0
	if s.ID != "" {
		n += 100
	}
	if s.Class != "" {
		n += 10
	}
	if s.Element != "" {
		n++
	}
	if s.Ancestor != nil {
		n += s.Ancestor.Specificity()
	}
	return n
}

// Subject is what selectors are matched against.
type Subject interface {
	// SelectorNames returns element name, class and id of the subject.
	SelectorNames() (element, class, id string)
	// SelectorParent returns parent subject or nil at the root.
	SelectorParent() Subject
}

// Matches checks selector against subject and, for descendant selectors,
// against its ancestors.
func (s Selector) Matches(sub Subject) bool {
	if !s.matchesSimple(sub) {
		return false
	}
	if s.Ancestor == nil {
		return true
	}
	for p := sub.SelectorParent(); p != nil; p = p.SelectorParent() {
		if s.Ancestor.Matches(p) {
			return true
		}
	}
	return false
}

func (s Selector) matchesSimple(sub Subject) bool {
	if sub == nil || !s.IsSimple() {
		return false
	}
	element, class, id := sub.SelectorNames()
	if s.Element != "" && !strings.EqualFold(s.Element, element) {
		return false
	}
	if s.Class != "" && !hasClass(class, s.Class) {
		return false
	}
	if s.ID != "" && s.ID != id {
		return false
	}
	return true
}

func hasClass(list, class string) bool {
	for _, c := range strings.Fields(list) {
		if c == class {
			return true
		}
	}
	return false
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   Selector         // Parsed selector
	Properties map[string]Value // Property name -> value
}

// GetProperty returns the value for a property, or empty Value if not found.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Rules    []Rule   // All rules in source order
	Warnings []string // Warnings for unsupported features
}

// RulesBySelector returns all rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, rule := range s.Rules {
		if rule.Selector.Raw == selector {
			matches = append(matches, rule)
		}
	}
	return matches
}

// Match returns rules applicable to subject ordered by ascending
// specificity, source order is kept among rules of equal specificity, so
// applying them in sequence produces cascaded result.
func (s *Stylesheet) Match(sub Subject) []Rule {
	if s == nil {
		return nil
	}
	var matches []Rule
	for _, rule := range s.Rules {
		if rule.Selector.Matches(sub) {
			matches = append(matches, rule)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Selector.Specificity() < matches[j].Selector.Specificity()
	})
	return matches
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range s.Rules {
		if i > 0 {
			n, err := fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err := writeRule(w, &s.Rules[i])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s {\n", rule.Selector.Raw)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, rule.Properties)
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// writeProperties writes property declarations sorted alphabetically.
func writeProperties(w io.Writer, props map[string]Value) (int, error) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int
	for _, name := range names {
		n, err := fmt.Fprintf(w, "  %s: %s;\n", name, props[name].Raw)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Package selector assembles CSS selector strings from typed fragments,
// enforcing compound selector grammar order. It only builds and renders
// text - it never parses selectors or interprets CSS semantics.
package selector

// Part identifies a simple selector fragment kind. The numeric order of
// the constants is the grammar order of a compound selector.
type Part int

const (
	PartNone          Part = iota // nothing added yet
	PartElement                   // div
	PartID                        // #id
	PartClass                     // .class
	PartAttr                      // [attr]
	PartPseudoClass               // :pseudo-class
	PartPseudoElement             // ::pseudo-element
)

// String returns the human readable name of the fragment kind.
func (p Part) String() string {
	switch p {
	case PartElement:
		return "element"
	case PartID:
		return "id"
	case PartClass:
		return "class"
	case PartAttr:
		return "attribute"
	case PartPseudoClass:
		return "pseudo-class"
	case PartPseudoElement:
		return "pseudo-element"
	default:
		return "none"
	}
}

// Selector is an immutable accumulator of selector fragments. The zero
// value is an empty selector ready for use. Every method copies its
// receiver and returns a new value, so any intermediate result may be
// kept, branched into independent continuations or shared between
// goroutines - nothing ever writes through an existing value.
//
// Fragments must be added in grammar order: element, id, class,
// attribute, pseudo-class, pseudo-element. id, class, attribute and
// pseudo-class fragments may repeat and accumulate in call order;
// element and pseudo-element may occur at most once.
type Selector struct {
	element       string
	id            string
	class         string
	attr          string
	pseudoClass   string
	pseudoElement string
	stage         Part
	composite     string
}

// Element returns a new selector with an element fragment added. It
// fails if an element fragment is already present or if any later
// fragment kind was added before.
func (s Selector) Element(value string) (Selector, error) {
	if s.element != "" {
		return s, &DuplicatePartError{Part: PartElement}
	}
	if s.stage > PartElement {
		return s, &OrderError{Last: s.stage, Next: PartElement}
	}
	s.element = value
	s.stage = PartElement
	return s, nil
}

// ID returns a new selector with a "#value" fragment appended. Repeated
// calls accumulate.
func (s Selector) ID(value string) (Selector, error) {
	if s.stage > PartID {
		return s, &OrderError{Last: s.stage, Next: PartID}
	}
	s.id += "#" + value
	s.stage = PartID
	return s, nil
}

// Class returns a new selector with a ".value" fragment appended.
// Repeated calls accumulate.
func (s Selector) Class(value string) (Selector, error) {
	if s.stage > PartClass {
		return s, &OrderError{Last: s.stage, Next: PartClass}
	}
	s.class += "." + value
	s.stage = PartClass
	return s, nil
}

// Attr returns a new selector with a "[value]" fragment appended. The
// value is embedded verbatim, attribute syntax is not validated.
// Repeated calls accumulate.
func (s Selector) Attr(value string) (Selector, error) {
	if s.stage > PartAttr {
		return s, &OrderError{Last: s.stage, Next: PartAttr}
	}
	s.attr += "[" + value + "]"
	s.stage = PartAttr
	return s, nil
}

// PseudoClass returns a new selector with a ":value" fragment appended.
// Repeated calls accumulate.
func (s Selector) PseudoClass(value string) (Selector, error) {
	if s.stage > PartPseudoClass {
		return s, &OrderError{Last: s.stage, Next: PartPseudoClass}
	}
	s.pseudoClass += ":" + value
	s.stage = PartPseudoClass
	return s, nil
}

// PseudoElement returns a new selector with a "::value" fragment added.
// It fails if a pseudo-element fragment is already present. No order
// check is needed - pseudo-element is the last grammar position.
func (s Selector) PseudoElement(value string) (Selector, error) {
	if s.pseudoElement != "" {
		return s, &DuplicatePartError{Part: PartPseudoElement}
	}
	s.pseudoElement = "::" + value
	s.stage = PartPseudoElement
	return s, nil
}

// Combine renders a and b and joins them with the combinator token
// padded by a single space on each side, appending the result to any
// composite already present on the receiver. The token is inserted
// verbatim - it is not interpreted and spacing is never collapsed, so a
// descendant combination uses the " " token. Combine never fails.
func (s Selector) Combine(a Selector, combinator string, b Selector) Selector {
	s.composite += a.String() + " " + combinator + " " + b.String()
	return s
}

// String renders the selector. A combined selector renders its composite
// string verbatim; otherwise present fragments are concatenated in
// grammar order with no additional separators.
func (s Selector) String() string {
	if s.composite != "" {
		return s.composite
	}
	return s.element + s.id + s.class + s.attr + s.pseudoClass + s.pseudoElement
}

// Package level constructors start a chain from the empty selector. On
// an empty selector no duplicate or order check can fire, so they do not
// return an error.

// Element starts a new selector chain with an element fragment.
func Element(value string) Selector {
	s, _ := Selector{}.Element(value)
	return s
}

// ID starts a new selector chain with an id fragment.
func ID(value string) Selector {
	s, _ := Selector{}.ID(value)
	return s
}

// Class starts a new selector chain with a class fragment.
func Class(value string) Selector {
	s, _ := Selector{}.Class(value)
	return s
}

// Attr starts a new selector chain with an attribute fragment.
func Attr(value string) Selector {
	s, _ := Selector{}.Attr(value)
	return s
}

// PseudoClass starts a new selector chain with a pseudo-class fragment.
func PseudoClass(value string) Selector {
	s, _ := Selector{}.PseudoClass(value)
	return s
}

// PseudoElement starts a new selector chain with a pseudo-element fragment.
func PseudoElement(value string) Selector {
	s, _ := Selector{}.PseudoElement(value)
	return s
}

// Combine joins two selectors with a combinator token into a new
// composite selector.
func Combine(a Selector, combinator string, b Selector) Selector {
	return Selector{}.Combine(a, combinator, b)
}

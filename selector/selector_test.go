package selector_test

import (
	"errors"
	"testing"

	"cssel/selector"
)

// chain applies fragment methods in order, failing the test on the first
// unexpected error.
func chain(t *testing.T, s selector.Selector, steps ...func(selector.Selector) (selector.Selector, error)) selector.Selector {
	t.Helper()
	var err error
	for i, step := range steps {
		if s, err = step(s); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}
	return s
}

func TestFullChainRendering(t *testing.T) {
	s := chain(t, selector.Element("a"),
		func(s selector.Selector) (selector.Selector, error) { return s.ID("x") },
		func(s selector.Selector) (selector.Selector, error) { return s.Class("c1") },
		func(s selector.Selector) (selector.Selector, error) { return s.Class("c2") },
		func(s selector.Selector) (selector.Selector, error) { return s.Attr(`href$=".png"`) },
		func(s selector.Selector) (selector.Selector, error) { return s.PseudoClass("focus") },
	)

	want := `a#x.c1.c2[href$=".png"]:focus`
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestAllFragmentKinds(t *testing.T) {
	s := chain(t, selector.Element("div"),
		func(s selector.Selector) (selector.Selector, error) { return s.ID("top") },
		func(s selector.Selector) (selector.Selector, error) { return s.Class("menu") },
		func(s selector.Selector) (selector.Selector, error) { return s.Attr(`role="nav"`) },
		func(s selector.Selector) (selector.Selector, error) { return s.PseudoClass("hover") },
		func(s selector.Selector) (selector.Selector, error) { return s.PseudoElement("before") },
	)

	want := `div#top.menu[role="nav"]:hover::before`
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRepeatedFragmentsAccumulate(t *testing.T) {
	s := chain(t, selector.ID("main"),
		func(s selector.Selector) (selector.Selector, error) { return s.Class("container") },
		func(s selector.Selector) (selector.Selector, error) { return s.Class("editable") },
	)

	want := "#main.container.editable"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDuplicateElement(t *testing.T) {
	_, err := selector.Element("a").Element("b")
	if err == nil {
		t.Fatal("expected error when element is added twice")
	}
	if !selector.IsDuplicatePart(err) {
		t.Errorf("expected duplicate part error, got %v", err)
	}

	var dup *selector.DuplicatePartError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicatePartError, got %T", err)
	}
	if dup.Part != selector.PartElement {
		t.Errorf("Part = %v, want %v", dup.Part, selector.PartElement)
	}
}

func TestDuplicatePseudoElement(t *testing.T) {
	_, err := selector.PseudoElement("before").PseudoElement("after")
	if err == nil {
		t.Fatal("expected error when pseudo-element is added twice")
	}
	if !selector.IsDuplicatePart(err) {
		t.Errorf("expected duplicate part error, got %v", err)
	}
}

func TestOrderViolations(t *testing.T) {
	tests := []struct {
		name string
		op   func() (selector.Selector, error)
	}{
		{"element after id", func() (selector.Selector, error) { return selector.ID("x").Element("a") }},
		{"id after class", func() (selector.Selector, error) { return selector.Class("c").ID("x") }},
		{"class after attribute", func() (selector.Selector, error) { return selector.Attr("href").Class("c") }},
		{"attribute after pseudo-class", func() (selector.Selector, error) { return selector.PseudoClass("hover").Attr("href") }},
		{"pseudo-class after pseudo-element", func() (selector.Selector, error) { return selector.PseudoElement("after").PseudoClass("hover") }},
		{"element after pseudo-element", func() (selector.Selector, error) { return selector.PseudoElement("after").Element("a") }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.op()
			if err == nil {
				t.Fatal("expected order violation")
			}
			if !selector.IsOrderViolation(err) {
				t.Errorf("expected order violation error, got %v", err)
			}
		})
	}
}

func TestOrderErrorDetails(t *testing.T) {
	_, err := selector.Class("c").ID("x")

	var ord *selector.OrderError
	if !errors.As(err, &ord) {
		t.Fatalf("expected *OrderError, got %T", err)
	}
	if ord.Last != selector.PartClass || ord.Next != selector.PartID {
		t.Errorf("OrderError{Last: %v, Next: %v}, want {Last: class, Next: id}", ord.Last, ord.Next)
	}
	if msg := err.Error(); msg != "selector: id should not occur after class" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestCombine(t *testing.T) {
	a := chain(t, selector.Element("div"),
		func(s selector.Selector) (selector.Selector, error) { return s.ID("main") })
	b := chain(t, selector.Element("table"),
		func(s selector.Selector) (selector.Selector, error) { return s.ID("data") })

	want := "div#main + table#data"
	if got := selector.Combine(a, "+", b).String(); got != want {
		t.Errorf("Combine() = %q, want %q", got, want)
	}
}

func TestNestedCombine(t *testing.T) {
	a := selector.Element("ul")
	b := selector.Element("li")
	c := selector.Class("active")

	left := selector.Combine(a, ">", b)
	if got, want := selector.Combine(left, "~", c).String(), "ul > li ~ .active"; got != want {
		t.Errorf("left-nested Combine() = %q, want %q", got, want)
	}

	right := selector.Combine(b, "~", c)
	if got, want := selector.Combine(a, ">", right).String(), "ul > li ~ .active"; got != want {
		t.Errorf("right-nested Combine() = %q, want %q", got, want)
	}
}

func TestCombineKeepsTokenVerbatim(t *testing.T) {
	// Descendant combination uses the " " token; with the single-space
	// padding on both sides the result keeps all three spaces.
	got := selector.Combine(selector.Element("div"), " ", selector.Element("span")).String()
	if want := "div   span"; got != want {
		t.Errorf("Combine() = %q, want %q", got, want)
	}
}

func TestCombineAppendsToReceiverComposite(t *testing.T) {
	base := selector.Combine(selector.Element("a"), ">", selector.Element("b"))
	next := base.Combine(selector.Element("c"), "+", selector.Element("d"))

	if got, want := next.String(), "a > bc + d"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := base.String(), "a > b"; got != want {
		t.Errorf("receiver changed, String() = %q, want %q", got, want)
	}
}

func TestMethodsDoNotMutateReceiver(t *testing.T) {
	base := chain(t, selector.Element("p"),
		func(s selector.Selector) (selector.Selector, error) { return s.Class("note") })
	before := base.String()

	if _, err := base.Class("extra"); err != nil {
		t.Fatalf("Class() failed: %v", err)
	}
	if _, err := base.Element("div"); err == nil {
		t.Fatal("expected duplicate element error")
	}
	if _, err := base.ID("x"); err == nil {
		t.Fatal("expected order violation")
	}
	selector.Combine(base, ">", base)

	if after := base.String(); after != before {
		t.Errorf("receiver changed from %q to %q", before, after)
	}
}

func TestBranchingChains(t *testing.T) {
	base := selector.Element("ul")

	left := chain(t, base, func(s selector.Selector) (selector.Selector, error) { return s.Class("flat") })
	right := chain(t, base, func(s selector.Selector) (selector.Selector, error) { return s.Class("nested") })

	if got, want := left.String(), "ul.flat"; got != want {
		t.Errorf("left branch = %q, want %q", got, want)
	}
	if got, want := right.String(), "ul.nested"; got != want {
		t.Errorf("right branch = %q, want %q", got, want)
	}
	if got, want := base.String(), "ul"; got != want {
		t.Errorf("origin = %q, want %q", got, want)
	}
}

func TestZeroValue(t *testing.T) {
	var s selector.Selector
	if got := s.String(); got != "" {
		t.Errorf("zero value String() = %q, want empty", got)
	}

	s2, err := s.PseudoClass("focus")
	if err != nil {
		t.Fatalf("PseudoClass() on zero value failed: %v", err)
	}
	if got, want := s2.String(), ":focus"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPartString(t *testing.T) {
	names := map[selector.Part]string{
		selector.PartNone:          "none",
		selector.PartElement:       "element",
		selector.PartID:            "id",
		selector.PartClass:         "class",
		selector.PartAttr:          "attribute",
		selector.PartPseudoClass:   "pseudo-class",
		selector.PartPseudoElement: "pseudo-element",
	}
	for part, want := range names {
		if got := part.String(); got != want {
			t.Errorf("Part(%d).String() = %q, want %q", int(part), got, want)
		}
	}
}

func TestPredicatesDistinguishKinds(t *testing.T) {
	_, dupErr := selector.Element("a").Element("b")
	_, ordErr := selector.ID("x").Element("a")

	if selector.IsOrderViolation(dupErr) {
		t.Error("duplicate error misreported as order violation")
	}
	if selector.IsDuplicatePart(ordErr) {
		t.Error("order error misreported as duplicate part")
	}
	if selector.IsDuplicatePart(nil) || selector.IsOrderViolation(nil) {
		t.Error("predicates must be false for nil")
	}
}

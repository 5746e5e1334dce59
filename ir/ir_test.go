package ir

import "testing"

func TestPlainTextFlattensNesting(t *testing.T) {
	inlines := []Inline{
		&Strong{Content: []Inline{
			&Text{Text: "Hello "},
			&Emphasis{Content: []Inline{&Text{Text: "world"}}},
		}},
		&SoftBreak{},
		&Link{URL: "https://example.com", Content: []Inline{&Text{Text: "link"}}},
	}
	if got := PlainText(inlines); got != "Hello world link" {
		t.Fatalf("PlainText = %q", got)
	}
}

func TestCalloutKindFromMarker(t *testing.T) {
	cases := []struct {
		marker string
		kind   CalloutKind
		ok     bool
	}{
		{"NOTE", CalloutNote, true},
		{"note", CalloutNote, true},
		{"Warning", CalloutWarning, true},
		{"TIP", CalloutTip, true},
		{"BOGUS", CalloutNote, false},
	}
	for _, c := range cases {
		kind, ok := CalloutKindFromMarker(c.marker)
		if kind != c.kind || ok != c.ok {
			t.Errorf("CalloutKindFromMarker(%q) = %v, %v; want %v, %v", c.marker, kind, ok, c.kind, c.ok)
		}
	}
}

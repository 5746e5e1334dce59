package theme

import "testing"

func TestDegradeIsDeterministic(t *testing.T) {
	c := RGB(0x5f, 0xaf, 0xff)
	for _, depth := range []ColorDepth{DepthTrueColor, Depth256, Depth16, DepthMono} {
		a := c.Degrade(depth)
		b := c.Degrade(depth)
		if a != b {
			t.Fatalf("degrade at depth %d not deterministic: %v vs %v", depth, a, b)
		}
	}
}

func TestDegradeTrueColorPassesThrough(t *testing.T) {
	c := RGB(1, 2, 3)
	if got := c.Degrade(DepthTrueColor); got != c {
		t.Fatalf("truecolor changed: %v", got)
	}
}

func TestDegradeTo256UsesCubeAndGray(t *testing.T) {
	if got := RGB(0, 0, 0).Degrade(Depth256); got != ANSI256(16) {
		t.Errorf("black -> %v, want cube index 16", got)
	}
	if got := RGB(255, 255, 255).Degrade(Depth256); got != ANSI256(231) {
		t.Errorf("white -> %v, want cube index 231", got)
	}
	got := RGB(128, 128, 128).Degrade(Depth256)
	if got.Mode != ColorANSI256 || got.Index < 232 {
		t.Errorf("mid gray -> %v, want grayscale ramp entry", got)
	}
}

func TestDegradeTo16PicksNearest(t *testing.T) {
	if got := RGB(250, 10, 10).Degrade(Depth16); got != ANSI(9) {
		t.Errorf("bright red -> %v, want ANSI 9", got)
	}
	if got := RGB(0, 0, 0).Degrade(Depth16); got != ANSI(0) {
		t.Errorf("black -> %v, want ANSI 0", got)
	}
}

func TestDegradeMonoDropsColor(t *testing.T) {
	if got := RGB(10, 200, 30).Degrade(DepthMono); got.IsSet() {
		t.Fatalf("mono kept color: %v", got)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
		err  bool
	}{
		{"#5fafff", RGB(0x5f, 0xaf, 0xff), false},
		{"", Color{}, false},
		{"default", Color{}, false},
		{"12", ANSI(12), false},
		{"196", ANSI256(196), false},
		{"#xyz", Color{}, true},
		{"300", Color{}, true},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if (err != nil) != c.err {
			t.Errorf("ParseColor(%q) err = %v, want err=%v", c.in, err, c.err)
			continue
		}
		if !c.err && got != c.want {
			t.Errorf("ParseColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestStyleMerge(t *testing.T) {
	base := Style{FG: RGB(1, 1, 1), Italic: true}
	got := base.Merge(Style{Bold: true, FG: ANSI(4)})
	if !got.Bold || !got.Italic || got.FG != ANSI(4) {
		t.Fatalf("merge = %+v", got)
	}
}

func TestBuiltinThemes(t *testing.T) {
	for _, name := range BuiltinNames() {
		th := Builtin(name)
		if th == nil {
			t.Fatalf("builtin %q missing", name)
		}
		if th.Name != name {
			t.Errorf("builtin %q has name %q", name, th.Name)
		}
	}
	if Builtin("nope") != nil {
		t.Error("unknown theme should be nil")
	}
}

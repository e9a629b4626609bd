package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/captcha/pkg/fonts"
)

func TestInspectFonts(t *testing.T) {
	rows := inspectFonts([]string{"builtin:gomono", "builtin:nope"})

	if rows[0].err != nil {
		t.Fatalf("gomono: %v", rows[0].err)
	}
	if rows[0].family == "" || rows[0].glyphs == 0 {
		t.Errorf("gomono row = %+v, want family and glyphs", rows[0])
	}
	if rows[1].err == nil {
		t.Error("unknown builtin should fail")
	}
}

func TestRenderFontTable(t *testing.T) {
	out := renderFontTable(inspectFonts(fonts.Builtins()))
	for _, id := range fonts.Builtins() {
		if !strings.Contains(out, id) {
			t.Errorf("table missing %s", id)
		}
	}
	if !strings.Contains(out, "Family") {
		t.Error("table missing header")
	}
}

func TestFontsCommand(t *testing.T) {
	out, err := runCLI(t, "fonts")
	if err != nil {
		t.Fatalf("fonts: %v", err)
	}
	if !strings.Contains(out, fonts.DefaultFont) {
		t.Errorf("fonts output missing %s", fonts.DefaultFont)
	}

	if _, err := runCLI(t, "fonts", "builtin:gobold", "definitely-not-a-font-xyz"); err == nil {
		t.Error("expected error for an unresolvable font")
	}
}

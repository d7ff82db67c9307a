package styles

import "testing"

func TestThemeByName(t *testing.T) {
	if got := ThemeByName("high-contrast"); got.Name != "high-contrast" {
		t.Fatalf("expected high-contrast theme, got %q", got.Name)
	}
	if got := ThemeByName(" Default "); got.Name != "default" {
		t.Fatalf("expected default theme, got %q", got.Name)
	}
	if got := ThemeByName("neon"); got.Name != DefaultTheme.Name {
		t.Fatalf("expected fallback to default, got %q", got.Name)
	}
}

func TestBuildStylesKeepsTheme(t *testing.T) {
	s := BuildStyles(HighContrastTheme)
	if s.Theme.Name != HighContrastTheme.Name {
		t.Fatalf("expected theme %q, got %q", HighContrastTheme.Name, s.Theme.Name)
	}
	if s.Checked.Render("x") == "" {
		t.Fatalf("expected rendered output")
	}
}

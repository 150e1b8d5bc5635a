package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("FACTPRIME_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when FACTPRIME_DARK_MODE=1")
	}

	t.Setenv("FACTPRIME_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when FACTPRIME_DARK_MODE is unset")
	}
}

func TestDetectTheme_ColorFGBG(t *testing.T) {
	t.Setenv("FACTPRIME_DARK_MODE", "")

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Errorf("expected dark theme for black background")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Errorf("expected light theme for white background")
	}

	t.Setenv("COLORFGBG", "garbage")
	if DetectTheme().IsDark {
		t.Errorf("expected light theme for unparseable COLORFGBG")
	}
}

func TestThemeNamed(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("FACTPRIME_DARK_MODE", "1")

	if ThemeNamed("light").IsDark {
		t.Errorf("ui.theme=light should override the environment")
	}
	if !ThemeNamed("dark").IsDark {
		t.Errorf("ui.theme=dark should be dark")
	}
	if !ThemeNamed("").IsDark {
		t.Errorf("empty ui.theme should auto-detect")
	}
}

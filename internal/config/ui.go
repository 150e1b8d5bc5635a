package config

import "fmt"

// ButtonConfig describes one main-window button and the dialog it opens.
type ButtonConfig struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description"` // tooltip text
	DialogTitle string `yaml:"dialog_title"`
}

// UIConfig holds user interface configuration.
type UIConfig struct {
	WindowTitle string `yaml:"window_title"`
	MainTitle   string `yaml:"main_title"`

	// Theme is "light", "dark", or empty to auto-detect from the terminal.
	Theme string `yaml:"theme"`

	Prompt      string `yaml:"prompt"`
	Placeholder string `yaml:"placeholder"`

	// ResultWidth wraps result text at this many columns (0 = window width)
	ResultWidth int `yaml:"result_width"`

	Factorial ButtonConfig `yaml:"factorial"`
	Prime     ButtonConfig `yaml:"prime"`
}

// ValidThemes lists accepted ui.theme values.
var ValidThemes = []string{"", "light", "dark"}

// DefaultUIConfig returns the stock two-button window labels.
func DefaultUIConfig() UIConfig {
	return UIConfig{
		WindowTitle: "User Interface",
		MainTitle:   "Technical Assessment",
		Prompt:      "Enter a number:",
		Placeholder: "Enter number here",
		ResultWidth: 60,
		Factorial: ButtonConfig{
			Label:       "Factorial",
			Description: "Calculates the factorial of n.",
			DialogTitle: "Factorial Calculator",
		},
		Prime: ButtonConfig{
			Label:       "Prime Check",
			Description: "Checks if the number is prime.",
			DialogTitle: "Prime Number Checker",
		},
	}
}

// Validate checks theme and width.
func (c *UIConfig) Validate() error {
	valid := false
	for _, t := range ValidThemes {
		if c.Theme == t {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid ui.theme: %q (valid: light, dark, or empty)", c.Theme)
	}
	if c.ResultWidth < 0 {
		return fmt.Errorf("ui.result_width must not be negative, got %d", c.ResultWidth)
	}
	return nil
}

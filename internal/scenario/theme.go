// Package scenario supplies the narrative contexts (characters, settings,
// items, templates) that wrap a raw computation in a real-world story.
package scenario

// Theme is a real-world narrative setting.
type Theme string

const (
	ThemeShopping    Theme = "shopping"
	ThemeCooking     Theme = "cooking"
	ThemeSports      Theme = "sports"
	ThemeSchool      Theme = "school"
	ThemeNature      Theme = "nature"
	ThemePocketMoney Theme = "pocket-money"
	ThemeTravel      Theme = "travel"
	ThemeGarden      Theme = "garden"
)

// AllThemes returns every theme in display order.
func AllThemes() []Theme {
	return []Theme{
		ThemeShopping,
		ThemeCooking,
		ThemeSports,
		ThemeSchool,
		ThemeNature,
		ThemePocketMoney,
		ThemeTravel,
		ThemeGarden,
	}
}

// ThemeDisplayName returns a human-readable name for a theme.
func ThemeDisplayName(t Theme) string {
	switch t {
	case ThemeShopping:
		return "At the Shops"
	case ThemeCooking:
		return "In the Kitchen"
	case ThemeSports:
		return "Sports Day"
	case ThemeSchool:
		return "At School"
	case ThemeNature:
		return "Out in Nature"
	case ThemePocketMoney:
		return "Pocket Money"
	case ThemeTravel:
		return "On a Journey"
	case ThemeGarden:
		return "In the Garden"
	default:
		return string(t)
	}
}

// IsValid reports whether t is a known theme.
func (t Theme) IsValid() bool {
	for _, known := range AllThemes() {
		if t == known {
			return true
		}
	}
	return false
}

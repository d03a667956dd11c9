package scenario

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/primagen/primagen/internal/rng"
)

// Service selects or synthesizes a narrative context for one question.
type Service interface {
	SelectScenario(ctx context.Context, req Request) (*Context, error)
}

// ProceduralService synthesizes scenarios from the static theme banks.
// Each call builds a fresh Context; nothing is shared between requests.
type ProceduralService struct {
	src rng.Source
}

// NewProcedural creates a ProceduralService. A nil source uses the default
// non-deterministic one.
func NewProcedural(src rng.Source) *ProceduralService {
	if src == nil {
		src = rng.Default()
	}
	return &ProceduralService{src: src}
}

func (s *ProceduralService) SelectScenario(_ context.Context, req Request) (*Context, error) {
	theme := req.Theme
	if theme == "" {
		theme = pickTheme(s.src, req.MathModel)
	}
	if !theme.IsValid() {
		return nil, fmt.Errorf("unknown scenario theme %q", theme)
	}

	bank := themeBanks[theme]

	cultural := DefaultCulturalContext()
	if req.Cultural != nil {
		cultural = *req.Cultural
	}

	// Two distinct characters so comparison narratives have both sides.
	names := make([]string, len(characterNames))
	copy(names, characterNames)
	rng.Shuffle(s.src, names)
	characters := []Character{
		{Name: names[0], Role: rng.Pick(s.src, bank.roles)},
		{Name: names[1], Role: rng.Pick(s.src, bank.roles)},
	}

	return &Context{
		ID:         uuid.New().String(),
		Theme:      theme,
		Setting:    rng.Pick(s.src, bank.settings),
		Characters: characters,
		Items:      bank.items,
		Cultural:   cultural,
		Templates:  bank.templates,
	}, nil
}

// currencyModels prefer money-flavoured themes.
var currencyModels = map[string]bool{
	"PERCENTAGE": true,
	"UNIT_RATE":  true,
}

// pickTheme draws a theme, biasing money models toward money themes.
func pickTheme(src rng.Source, mathModel string) Theme {
	if currencyModels[mathModel] {
		return rng.Pick(src, []Theme{ThemeShopping, ThemePocketMoney})
	}
	return rng.Pick(src, AllThemes())
}

// Default returns a minimal school-theme scenario for fallback paths where
// scenario selection itself failed.
func Default() *Context {
	bank := themeBanks[ThemeSchool]
	return &Context{
		ID:         uuid.New().String(),
		Theme:      ThemeSchool,
		Setting:    bank.settings[0],
		Characters: []Character{{Name: "Sam", Role: "pupil"}},
		Items:      bank.items,
		Cultural:   DefaultCulturalContext(),
		Templates:  bank.templates,
	}
}

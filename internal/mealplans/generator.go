package mealplans

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ErrNotEnoughRecipes means a fill was requested with fewer than three
// usable recipes. Recoverable: the existing plan stays untouched.
var ErrNotEnoughRecipes = errors.New("not enough recipes to fill a day (need at least 3)")

// Generator assigns recipes to day slots at random without repeats.
// The RNG is injected so tests can seed it.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator. A nil rng gets a time-seeded one.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// GenerateDay fills breakfast/lunch/dinner from the pool, excluding recipes
// already used that day. The pool minus exclusions must hold at least three
// recipes, otherwise ErrNotEnoughRecipes is returned and nothing is assigned.
func (g *Generator) GenerateDay(pool []RecipeSummary, alreadyUsed map[uuid.UUID]bool) (DailyMealPlan, error) {
	available := exclude(pool, alreadyUsed)
	if len(available) < 3 {
		return DailyMealPlan{}, ErrNotEnoughRecipes
	}

	shuffled := g.shuffled(available)

	var plan DailyMealPlan
	plan.Breakfast = &shuffled[0]
	plan.Lunch = &shuffled[1]
	plan.Dinner = &shuffled[2]
	return plan, nil
}

// GenerateWeek fills the 7 calendar days starting at weekStart, tracking
// used recipes across the week. When fewer than three unused recipes remain
// the exclusion set is dropped for that day and the full pool is reused —
// repeats only appear once the pool is exhausted.
func (g *Generator) GenerateWeek(pool []RecipeSummary, weekStart time.Time) (map[string]DailyMealPlan, error) {
	if len(pool) == 0 {
		return nil, ErrNotEnoughRecipes
	}

	used := make(map[uuid.UUID]bool)
	week := make(map[string]DailyMealPlan, 7)

	for dayOffset := 0; dayOffset < 7; dayOffset++ {
		date := weekStart.AddDate(0, 0, dayOffset)

		available := exclude(pool, used)
		if len(available) < 3 {
			available = pool
		}

		shuffled := g.shuffled(available)

		plan := DailyMealPlan{Date: DateKey(date)}
		for i, slot := range Slots {
			if i >= len(shuffled) {
				break
			}
			r := shuffled[i]
			plan.setSlot(slot, &r)
			used[r.ID] = true
		}

		week[plan.Date] = plan
	}

	return week, nil
}

// Swap picks a uniformly random recipe from the pool, excluding the slot's
// current occupant. Returns nil when no other recipe exists; the caller
// leaves the slot unchanged in that case.
func (g *Generator) Swap(pool []RecipeSummary, currentID *uuid.UUID) *RecipeSummary {
	var candidates []RecipeSummary
	for _, r := range pool {
		if currentID != nil && r.ID == *currentID {
			continue
		}
		candidates = append(candidates, r)
	}

	if len(candidates) == 0 {
		return nil
	}

	picked := candidates[g.rng.Intn(len(candidates))]
	return &picked
}

func (g *Generator) shuffled(pool []RecipeSummary) []RecipeSummary {
	out := append([]RecipeSummary(nil), pool...)
	g.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func exclude(pool []RecipeSummary, used map[uuid.UUID]bool) []RecipeSummary {
	var out []RecipeSummary
	for _, r := range pool {
		if !used[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

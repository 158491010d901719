package planner

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"healthy-bite-selector/internal/catalog"
)

// DietPreference is the diet requested for a whole plan.
type DietPreference string

const (
	DietVeg    DietPreference = "veg"
	DietNonVeg DietPreference = "nonveg"
	DietMixed  DietPreference = "mixed"
)

// UserItemScope controls which meal slots may receive user supplied food items.
type UserItemScope string

const (
	ScopeSnackOnly     UserItemScope = "snack_only"
	ScopeAllCategories UserItemScope = "all_categories"
)

var (
	// AllowedDayCounts are the plan lengths offered to users.
	AllowedDayCounts = []int{1, 2, 3, 5, 7}
	// AllowedCalorieTargets are the selectable targets. The target is never
	// used to steer selection.
	AllowedCalorieTargets = []int{1200, 1500, 1800, 2000, 2200, 2500}
)

// ErrInvalidPreferences wraps every validation failure of Preferences.
var ErrInvalidPreferences = errors.New("invalid preferences")

// Preferences describes a single generation request.
type Preferences struct {
	Cuisine          catalog.Cuisine `json:"cuisine"`
	DietType         DietPreference  `json:"dietType"`
	DayCount         int             `json:"dayCount"`
	CalorieTarget    int             `json:"calorieTarget"`
	DayWiseOverride  bool            `json:"dayWiseOverride"`
	VegetarianDays   []string        `json:"vegetarianDays"`
	IncludeUserItems bool            `json:"includeUserItems"`
	UserItems        []string        `json:"userItems,omitempty"`
	UserItemScope    UserItemScope   `json:"userItemScope"`
}

// ParseDietPreference accepts veg, nonveg or mixed in any case.
func ParseDietPreference(s string) (DietPreference, error) {
	d := DietPreference(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DietVeg, DietNonVeg, DietMixed:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown diet type %q", ErrInvalidPreferences, s)
}

// ParseUserItemScope accepts snack_only or all_categories in any case.
func ParseUserItemScope(s string) (UserItemScope, error) {
	sc := UserItemScope(strings.ToLower(strings.TrimSpace(s)))
	switch sc {
	case ScopeSnackOnly, ScopeAllCategories:
		return sc, nil
	}
	return "", fmt.Errorf("%w: unknown user item scope %q", ErrInvalidPreferences, s)
}

// ParseWeekday returns the canonical weekday label for s, ignoring case.
func ParseWeekday(s string) (string, error) {
	for _, d := range Weekdays {
		if strings.EqualFold(d, strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown weekday %q", ErrInvalidPreferences, s)
}

// Validate checks the request and normalises it in place: empty cuisine,
// diet and scope fall back to healthy, mixed and snack_only, and weekday
// names are canonicalised.
func (p *Preferences) Validate() error {
	if p.Cuisine == "" {
		p.Cuisine = catalog.Healthy
	}
	c, err := catalog.ParseCuisine(string(p.Cuisine))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}
	p.Cuisine = c

	if p.DietType == "" {
		p.DietType = DietMixed
	}
	if p.DietType, err = ParseDietPreference(string(p.DietType)); err != nil {
		return err
	}

	if p.UserItemScope == "" {
		p.UserItemScope = ScopeSnackOnly
	}
	if p.UserItemScope, err = ParseUserItemScope(string(p.UserItemScope)); err != nil {
		return err
	}

	if !slices.Contains(AllowedDayCounts, p.DayCount) {
		return fmt.Errorf("%w: day count %d not one of %v", ErrInvalidPreferences, p.DayCount, AllowedDayCounts)
	}
	if p.CalorieTarget != 0 && !slices.Contains(AllowedCalorieTargets, p.CalorieTarget) {
		return fmt.Errorf("%w: calorie target %d not one of %v", ErrInvalidPreferences, p.CalorieTarget, AllowedCalorieTargets)
	}

	days := make([]string, 0, len(p.VegetarianDays))
	for _, d := range p.VegetarianDays {
		name, err := ParseWeekday(d)
		if err != nil {
			return err
		}
		if !slices.Contains(days, name) {
			days = append(days, name)
		}
	}
	p.VegetarianDays = days
	return nil
}

// EffectiveDiet returns the diet that applies on the given day. A listed
// vegetarian day forces veg when the day-wise override is enabled.
func EffectiveDiet(p Preferences, day string) DietPreference {
	if p.DayWiseOverride && day != "" {
		for _, d := range p.VegetarianDays {
			if strings.EqualFold(d, day) {
				return DietVeg
			}
		}
	}
	if p.DietType == "" {
		return DietMixed
	}
	return p.DietType
}

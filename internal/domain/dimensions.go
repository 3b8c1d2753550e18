package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	ProficiencyNative    = "native"
	ProficiencyNonNative = "non-native"
)

// Dimensions is the set of optional attributes that characterise a synthetic
// recipe query. A nil field is unset.
type Dimensions struct {
	Cuisine              *string `json:"cuisine"`
	DietaryRestriction   *string `json:"dietary_restriction"`
	AvailableIngredients *string `json:"available_ingredients"`
	MealType             *string `json:"meal_type"`
	CookingTime          *string `json:"cooking_time"`
	SkillLevel           *string `json:"skill_level"`
	EnglishProficiency   *string `json:"english_proficiency"`
}

// DimensionFields lists the attribute names in their canonical column order.
var DimensionFields = []string{
	"cuisine",
	"dietary_restriction",
	"available_ingredients",
	"meal_type",
	"cooking_time",
	"skill_level",
	"english_proficiency",
}

func (d *Dimensions) field(name string) **string {
	switch name {
	case "cuisine":
		return &d.Cuisine
	case "dietary_restriction":
		return &d.DietaryRestriction
	case "available_ingredients":
		return &d.AvailableIngredients
	case "meal_type":
		return &d.MealType
	case "cooking_time":
		return &d.CookingTime
	case "skill_level":
		return &d.SkillLevel
	case "english_proficiency":
		return &d.EnglishProficiency
	}
	return nil
}

// Get returns the value of the named attribute and whether it is set.
func (d Dimensions) Get(name string) (string, bool) {
	p := d.field(name)
	if p == nil || *p == nil {
		return "", false
	}
	return **p, true
}

// Set assigns the named attribute. Unknown names are ignored and reported as false.
func (d *Dimensions) Set(name, value string) bool {
	p := d.field(name)
	if p == nil {
		return false
	}
	*p = &value
	return true
}

// Normalize trims every attribute and unsets the empty ones.
func (d Dimensions) Normalize() Dimensions {
	for _, name := range DimensionFields {
		p := d.field(name)
		if *p == nil {
			continue
		}
		v := strings.TrimSpace(**p)
		if v == "" {
			*p = nil
			continue
		}
		*p = &v
	}
	return d
}

// Validate checks enumerated attributes.
func (d Dimensions) Validate() error {
	if d.EnglishProficiency == nil {
		return nil
	}
	switch *d.EnglishProficiency {
	case ProficiencyNative, ProficiencyNonNative:
		return nil
	}
	return fmt.Errorf("domain: english_proficiency must be %q or %q, got %q", ProficiencyNative, ProficiencyNonNative, *d.EnglishProficiency)
}

// JSON renders the dimensions as indented JSON with unset attributes as null.
func (d Dimensions) JSON() string {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// LabeledQuery pairs a set of dimensions with the query written for them.
type LabeledQuery struct {
	Dimensions Dimensions `json:"dimensions"`
	Query      string     `json:"query"`
}

// JSON renders the labeled query as indented JSON.
func (q LabeledQuery) JSON() string {
	b, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// XML formats the labeled query as a few-shot example block.
func (q LabeledQuery) XML() string {
	return "<example>\n<dimensions>" + q.Dimensions.JSON() + "</dimensions>\n<query>" + q.Query + "</query>\n</example>"
}

// Str returns a pointer to s, for building Dimensions literals.
func Str(s string) *string { return &s }

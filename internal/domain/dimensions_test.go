package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDimensions_GetSet(t *testing.T) {
	var d Dimensions
	_, ok := d.Get("cuisine")
	require.False(t, ok)

	require.True(t, d.Set("cuisine", "Thai"))
	require.False(t, d.Set("spice", "hot"))

	v, ok := d.Get("cuisine")
	require.True(t, ok)
	require.Equal(t, "Thai", v)

	_, ok = d.Get("unknown")
	require.False(t, ok)
}

func TestDimensions_NormalizeUnsetsBlankValues(t *testing.T) {
	d := Dimensions{Cuisine: Str("  Thai "), MealType: Str("   "), SkillLevel: Str("")}.Normalize()
	require.Equal(t, Dimensions{Cuisine: Str("Thai")}, d)
}

func TestDimensions_Validate(t *testing.T) {
	require.NoError(t, Dimensions{}.Validate())
	require.NoError(t, Dimensions{EnglishProficiency: Str(ProficiencyNonNative)}.Validate())

	err := Dimensions{EnglishProficiency: Str("fluent")}.Validate()
	require.ErrorContains(t, err, "english_proficiency")
}

func TestDimensions_JSONRendersUnsetAsNull(t *testing.T) {
	out := Dimensions{Cuisine: Str("Italian")}.JSON()
	require.Contains(t, out, `"cuisine": "Italian"`)
	require.Contains(t, out, `"meal_type": null`)
}

func TestLabeledQuery_XML(t *testing.T) {
	q := LabeledQuery{Dimensions: Dimensions{MealType: Str("breakfast")}, Query: "quick vegan breakfast?"}
	out := q.XML()
	require.Contains(t, out, "<example>\n<dimensions>{")
	require.Contains(t, out, "}</dimensions>\n<query>quick vegan breakfast?</query>\n</example>")
}

func TestValidRole(t *testing.T) {
	require.True(t, ValidRole(RoleSystem))
	require.True(t, ValidRole(RoleUser))
	require.True(t, ValidRole(RoleAssistant))
	require.False(t, ValidRole("tool"))
}

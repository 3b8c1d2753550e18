package evalgen

import "recipe-assistant/internal/domain"

func attribute(description string) *domain.Schema {
	return &domain.Schema{Type: domain.TypeString, Description: description, Nullable: true}
}

var dimensionsSchema = &domain.Schema{
	Type:        domain.TypeObject,
	Description: "Attributes that change what a recipe query is about or how it is written",
	Ordering:    domain.DimensionFields,
	Properties: map[string]*domain.Schema{
		"cuisine":               attribute("The cuisine of the recipe"),
		"dietary_restriction":   attribute("The dietary restriction of the recipe"),
		"available_ingredients": attribute("The ingredients the user has available"),
		"meal_type":             attribute("The meal type of the recipe"),
		"cooking_time":          attribute("The cooking time of the recipe"),
		"skill_level":           attribute("The skill level of the user"),
		"english_proficiency": {
			Type:        domain.TypeString,
			Description: "The English proficiency of the user",
			Nullable:    true,
			Enum:        []string{domain.ProficiencyNative, domain.ProficiencyNonNative},
		},
	},
}

// dimensionListSchema wraps the list in an object; strict json_schema output
// needs an object at the root.
var dimensionListSchema = &domain.Schema{
	Type:     domain.TypeObject,
	Ordering: []string{"dimensions"},
	Required: []string{"dimensions"},
	Properties: map[string]*domain.Schema{
		"dimensions": {Type: domain.TypeArray, Items: dimensionsSchema},
	},
}

var querySchema = &domain.Schema{
	Type:     domain.TypeObject,
	Ordering: []string{"query"},
	Required: []string{"query"},
	Properties: map[string]*domain.Schema{
		"query": {
			Type:        domain.TypeString,
			Description: "The query that the user might use to search for a recipe that fits the dimensions",
		},
	},
}

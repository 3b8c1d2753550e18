package evalgen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"recipe-assistant/internal/domain"
)

const productManagerRole = `<role>
You are an expert product manager. You know exactly how users think, what they want, and how they express themselves.
</role>`

var dimensionsTemplate = template.Must(template.New("dimensions").Parse(`<instructions>
- Generate dimensions for possible recipe queries
- Try to populate at least 2 dimensions for each query
- Output {{.N}} sets of dimensions
- Avoid outputting dimensions that have already been generated
</instructions>
<dimensions>
- Specific cuisines (e.g., "Italian pasta dish", "Spicy Thai curry")
- Dietary restrictions (e.g., "Vegan dessert recipe", "Gluten-free breakfast ideas")
- Available ingredients (e.g., "What can I make with chicken, rice, and broccoli?")
- Meal types (e.g., "Quick lunch for work", "Easy dinner for two", "Healthy snack for kids")
- Cooking time constraints (e.g., "Recipe under 30 minutes")
- Skill levels (e.g., "Beginner-friendly baking recipe")
- English proficiency (e.g., "Native English speaker", "Non-native English speaker")
</dimensions>
<output_format>
[
    {
        "cuisine": "Italian pasta dish",
        "dietary_restriction": "Gluten-free",
        "available_ingredients": "chicken, rice, broccoli",
        "meal_type": "Quick lunch for work",
    },
    ...
]
</output_format>
<used_dimensions>
{{.Used}}
</used_dimensions>
`))

var queryTemplate = template.Must(template.New("query").Parse(`<instructions>
- From the provided dimensions, generate a query that user might use to search for a recipe that fits those dimensions.
- Remember, users use simple language and don't always specify their intent (think ~6th grade level)
- Vary the phrasing of the queries you generate
- Use the provided dimensions to guide the generation process
</instructions>
<examples>
{{.Examples}}
</examples>
<dimensions>
{{.Dimensions}}
</dimensions>
`))

func renderDimensionsPrompt(n int, used []domain.Dimensions) (string, error) {
	rendered := make([]string, len(used))
	for i, d := range used {
		rendered[i] = d.JSON()
	}
	return render(dimensionsTemplate, map[string]any{
		"N":    n,
		"Used": strings.Join(rendered, "\n"),
	})
}

func renderQueryPrompt(dims domain.Dimensions, examples []domain.LabeledQuery) (string, error) {
	rendered := make([]string, len(examples))
	for i, e := range examples {
		rendered[i] = e.XML()
	}
	return render(queryTemplate, map[string]any{
		"Examples":   strings.Join(rendered, "\n"),
		"Dimensions": dims.JSON(),
	})
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("evalgen: render %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}

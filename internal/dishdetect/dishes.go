package dishdetect

// DishDetails is the static nutrition metadata attached to a detected
// dish class.
type DishDetails struct {
	Origin            string `json:"origin"`
	Description       string `json:"description"`
	EstimatedCalories string `json:"estimated_calories"`
}

// dishDatabase holds the details for the dish classes the detector was
// trained on, keyed by the detector's class names.
var dishDatabase = map[string]DishDetails{
	"Burger": {
		Origin:            "United States/Germany (disputed)",
		Description:       "A sandwich consisting of a cooked patty of ground meat, usually beef, placed inside a sliced bun.",
		EstimatedCalories: "300-600 kcal",
	},
	"Pizza": {
		Origin:            "Italy (Naples)",
		Description:       "A savory dish of Italian origin consisting of a usually round, flattened base of leavened wheat-based dough topped with tomatoes, cheese, and various other ingredients, baked at a high temperature.",
		EstimatedCalories: "250-400 kcal per slice",
	},
	"Donut": {
		Origin:            "Netherlands/United States",
		Description:       "A small fried cake of sweetened dough, typically in the form of a ring or disk.",
		EstimatedCalories: "200-450 kcal",
	},
	"Hotdog": {
		Origin:            "Germany/United States",
		Description:       "A grilled or steamed sausage sandwich where the sausage is served in the slit of a partially sliced bun.",
		EstimatedCalories: "250-500 kcal",
	},
	"FriedChicken": {
		Origin:            "Scotland/Southern United States",
		Description:       "Dish consisting of chicken pieces that have been coated in a seasoned flour or batter and fried.",
		EstimatedCalories: "300-600 kcal per serving",
	},
}

// DishDetailsFor returns the metadata for a detected class name, if known.
func DishDetailsFor(className string) (DishDetails, bool) {
	details, ok := dishDatabase[className]
	return details, ok
}

package shopping

import "time"

// ShoppingList is the ingredient list derived from the latest generated meal plan.
type ShoppingList struct {
	Items     []string  `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
}

// keywordRule maps any of Match (case-insensitive substrings of a dish name) to Items.
type keywordRule struct {
	Match []string
	Items []string
}

var keywordRules = []keywordRule{
	{Match: []string{"egg", "omelette", "omelet"}, Items: []string{"Eggs"}},
	{Match: []string{"poha"}, Items: []string{"Poha", "Peanuts", "Curry leaves"}},
	{Match: []string{"paneer"}, Items: []string{"Paneer"}},
	{Match: []string{"chicken"}, Items: []string{"Chicken"}},
	{Match: []string{"rice", "biryani", "pulao"}, Items: []string{"Rice"}},
	{Match: []string{"dal", "lentil"}, Items: []string{"Lentils"}},
	{Match: []string{"oats", "oatmeal"}, Items: []string{"Oats"}},
	{Match: []string{"quinoa"}, Items: []string{"Quinoa"}},
	{Match: []string{"fish", "salmon", "tuna"}, Items: []string{"Fish"}},
	{Match: []string{"roti", "paratha", "naan", "chapati"}, Items: []string{"Whole wheat flour"}},
	{Match: []string{"chana", "chole", "chickpea", "hummus"}, Items: []string{"Chickpeas"}},
	{Match: []string{"rajma"}, Items: []string{"Kidney beans"}},
	{Match: []string{"yogurt", "raita", "curd", "lassi"}, Items: []string{"Yogurt"}},
	{Match: []string{"tofu"}, Items: []string{"Tofu"}},
	{Match: []string{"idli", "dosa"}, Items: []string{"Idli/Dosa batter"}},
	{Match: []string{"upma", "halwa"}, Items: []string{"Semolina"}},
	{Match: []string{"mutton", "lamb", "keema"}, Items: []string{"Mutton"}},
	{Match: []string{"prawn", "shrimp"}, Items: []string{"Prawns"}},
	{Match: []string{"turkey"}, Items: []string{"Turkey"}},
	{Match: []string{"spinach", "palak", "saag"}, Items: []string{"Spinach"}},
	{Match: []string{"avocado"}, Items: []string{"Avocado"}},
	{Match: []string{"banana"}, Items: []string{"Bananas"}},
	{Match: []string{"apple"}, Items: []string{"Apples"}},
	{Match: []string{"nut", "almond"}, Items: []string{"Mixed nuts"}},
	{Match: []string{"sprout"}, Items: []string{"Sprouts"}},
	{Match: []string{"salad"}, Items: []string{"Salad greens"}},
	{Match: []string{"toast", "sandwich", "wrap"}, Items: []string{"Whole grain bread"}},
}

// CommonIngredients are added once for every processed day.
var CommonIngredients = []string{"Salt", "Cooking oil", "Garam masala", "Onions", "Tomatoes", "Garlic", "Ginger"}

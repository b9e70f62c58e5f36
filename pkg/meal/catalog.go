package meal

import "foodflow/domain"

var catalog = []domain.Meal{
	{
		ID:              "1",
		Name:            "Pizza",
		ImageURL:        "https://www.cicis.com/content/images/cicis/Jalapeno%20pizza.png",
		Category:        "High protein",
		PrepTimeMinutes: 30,
		Tags:            []string{"Vegan", "Halal"},
		Calories:        900,
		Ingredients:     []string{"Tomato", "Cheese", "Flour"},
		Instructions: []string{
			"Preheat oven to 475°F (245°C).",
			"Roll out the pizza dough on a floured surface.",
			"Spread tomato sauce over the dough.",
			"Sprinkle cheese and add desired toppings.",
			"Bake for 12-15 minutes until crust is golden brown.",
			"Slice and serve hot.",
		},
	},
	{
		ID:              "2",
		Name:            "Pasta",
		ImageURL:        "https://jow.fr/_next/image?url=https%3A%2F%2Fstatic.jow.fr%2F880x880%2Frecipes%2Fjkk2G8R1Rt.png&w=2560&q=100",
		Category:        "Vegan",
		PrepTimeMinutes: 60,
		Tags:            []string{"Vegan"},
		Calories:        700,
		Ingredients:     []string{"Pasta", "Tomato Sauce", "Olives"},
		Instructions: []string{
			"Boil pasta in salted water for 8-10 minutes.",
			"In a pan, heat tomato sauce and add seasonings.",
			"Drain pasta and add it to the sauce.",
			"Stir in olives and mix well.",
			"Serve hot with a sprinkle of fresh herbs.",
		},
	},
	{
		ID:              "3",
		Name:            "Chicken Biryani",
		ImageURL:        "https://static.toiimg.com/thumb/84786366.cms?imgsize=152314&width=800&height=800",
		Category:        "Halal",
		PrepTimeMinutes: 90,
		Tags:            []string{"Halal", "High protein"},
		Calories:        1200,
		Ingredients:     []string{"Rice", "Chicken", "Spices", "Yogurt"},
		Instructions: []string{
			"Marinate chicken with yogurt and spices for 30 minutes.",
			"Cook basmati rice halfway and set aside.",
			"In a large pot, layer marinated chicken and half-cooked rice.",
			"Add saffron milk and ghee over the layers.",
			"Cover and cook on low heat for 40 minutes.",
			"Serve hot garnished with fresh coriander and fried onions.",
		},
	},
}

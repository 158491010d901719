package catalog

var healthyDishes = []DishRecord{
	{Breakfast, Veg, "Oatmeal with Berries", 300},
	{Breakfast, Veg, "Greek Yogurt Parfait", 280},
	{Breakfast, Veg, "Avocado Toast", 350},
	{Breakfast, Veg, "Banana Spinach Smoothie", 250},
	{Breakfast, Veg, "Chia Seed Pudding", 270},
	{Breakfast, Veg, "Vegetable Poha", 290},
	{Breakfast, Veg, "Paneer Bhurji Wrap", 380},
	{Breakfast, NonVeg, "Egg White Omelette", 220},
	{Breakfast, NonVeg, "Boiled Eggs with Toast", 310},
	{Breakfast, NonVeg, "Smoked Salmon Bagel", 420},
	{Breakfast, NonVeg, "Turkey Sausage Scramble", 390},

	{Lunch, Veg, "Quinoa Salad", 400},
	{Lunch, Veg, "Lentil Soup with Whole Grain Bread", 450},
	{Lunch, Veg, "Chickpea Buddha Bowl", 520},
	{Lunch, Veg, "Paneer Tikka Salad", 480},
	{Lunch, Veg, "Vegetable Brown Rice Stir Fry", 460},
	{Lunch, Veg, "Rajma with Brown Rice", 510},
	{Lunch, NonVeg, "Grilled Chicken Salad", 430},
	{Lunch, NonVeg, "Tuna Lettuce Wraps", 380},
	{Lunch, NonVeg, "Chicken Quinoa Bowl", 540},
	{Lunch, NonVeg, "Egg Fried Brown Rice", 500},

	{Dinner, Veg, "Tofu Vegetable Curry", 480},
	{Dinner, Veg, "Stuffed Bell Peppers", 420},
	{Dinner, Veg, "Dal with Roti", 450},
	{Dinner, Veg, "Palak Paneer with Roti", 520},
	{Dinner, Veg, "Vegetable Khichdi", 430},
	{Dinner, NonVeg, "Baked Salmon with Asparagus", 550},
	{Dinner, NonVeg, "Chicken Stir Fry", 500},
	{Dinner, NonVeg, "Grilled Fish with Quinoa", 520},
	{Dinner, NonVeg, "Chicken Biryani Bowl", 610},
	{Dinner, NonVeg, "Egg Curry with Roti", 490},

	{Snack, Veg, "Mixed Nuts", 180},
	{Snack, Veg, "Apple with Peanut Butter", 200},
	{Snack, Veg, "Hummus with Carrot Sticks", 150},
	{Snack, Veg, "Roasted Chana", 140},
	{Snack, Veg, "Fruit Salad", 120},
	{Snack, Veg, "Sprouts Chaat", 160},
	{Snack, NonVeg, "Hard Boiled Eggs", 140},
	{Snack, NonVeg, "Chicken Lettuce Cups", 190},
	{Snack, NonVeg, "Tuna Cucumber Bites", 130},
}

var indianDishes = []DishRecord{
	{Breakfast, Veg, "Idli Sambar", 280},
	{Breakfast, Veg, "Poha", 270},
	{Breakfast, Veg, "Upma", 250},
	{Breakfast, Veg, "Aloo Paratha", 420},
	{Breakfast, Veg, "Masala Dosa", 390},
	{Breakfast, Veg, "Uttapam", 330},
	{Breakfast, Veg, "Medu Vada", 310},
	{Breakfast, Veg, "Besan Chilla", 260},
	{Breakfast, Veg, "Puri Bhaji", 480},
	{Breakfast, Veg, "Methi Thepla", 300},
	{Breakfast, NonVeg, "Egg Bhurji with Pav", 410},
	{Breakfast, NonVeg, "Keema Paratha", 520},
	{Breakfast, NonVeg, "Masala Omelette", 290},

	{Lunch, Veg, "Chole Bhature", 650},
	{Lunch, Veg, "Rajma Chawal", 540},
	{Lunch, Veg, "Dal Makhani with Naan", 620},
	{Lunch, Veg, "Paneer Butter Masala with Rice", 680},
	{Lunch, Veg, "Vegetable Biryani", 560},
	{Lunch, Veg, "Aloo Gobi with Paratha", 520},
	{Lunch, Veg, "Sambar Rice", 450},
	{Lunch, Veg, "Baingan Bharta with Roti", 430},
	{Lunch, Veg, "Masoor Dal with Jeera Rice", 490},
	{Lunch, NonVeg, "Chicken Curry with Rice", 640},
	{Lunch, NonVeg, "Mutton Rogan Josh with Rice", 720},
	{Lunch, NonVeg, "Fish Fry with Rice", 590},

	{Dinner, Veg, "Veg Pulao", 450},
	{Dinner, Veg, "Chana Masala with Roti", 480},
	{Dinner, Veg, "Kadhai Paneer with Paratha", 610},
	{Dinner, Veg, "Malai Kofta with Naan", 680},
	{Dinner, Veg, "Matar Paneer with Rice", 560},
	{Dinner, Veg, "Dal Tadka with Roti", 420},
	{Dinner, NonVeg, "Butter Chicken with Naan", 720},
	{Dinner, NonVeg, "Egg Curry with Paratha", 560},
	{Dinner, NonVeg, "Fish Curry with Rice", 580},
	{Dinner, NonVeg, "Chicken Biryani", 700},

	{Snack, Veg, "Raita", 90},
	{Snack, Veg, "Papad", 60},
	{Snack, Veg, "Kachumber Salad", 70},
	{Snack, Veg, "Boondi Raita", 120},
	{Snack, Veg, "Mango Chutney", 80},
	{Snack, Veg, "Gulab Jamun", 300},
	{Snack, Veg, "Rasgulla", 190},
	{Snack, Veg, "Kheer", 260},
	{Snack, Veg, "Gajar Ka Halwa", 320},
	{Snack, Veg, "Kulfi", 240},
	{Snack, NonVeg, "Chicken Tikka", 260},
	{Snack, NonVeg, "Egg Pakora", 230},
	{Snack, NonVeg, "Amritsari Fish", 280},
}

package scenario

// themeBank holds the static material a procedural scenario is drawn from.
type themeBank struct {
	settings  []Setting
	roles     []string
	items     []Item
	templates []Template
}

// characterNames is the shared first-name pool.
var characterNames = []string{
	"Amara", "Ben", "Chloe", "Dev", "Ella", "Finn", "Grace", "Hassan",
	"Isla", "Jack", "Kai", "Lily", "Maya", "Noah", "Olive", "Priya",
	"Rosa", "Sam", "Tariq", "Yusuf", "Zara",
}

var themeBanks = map[Theme]themeBank{
	ThemeShopping: {
		settings: []Setting{
			{Location: "the corner shop", TimeOfDay: "after school", Atmosphere: "busy"},
			{Location: "the supermarket", TimeOfDay: "Saturday morning", Atmosphere: "bustling"},
			{Location: "the market stall", TimeOfDay: "midday", Atmosphere: "noisy"},
		},
		roles: []string{"shopper", "shopkeeper", "customer"},
		items: []Item{
			{Name: "apple", Category: "fruit", MinValue: 0.20, MaxValue: 0.60, Unit: "£"},
			{Name: "comic", Category: "magazine", MinValue: 1.50, MaxValue: 4.00, Unit: "£"},
			{Name: "loaf of bread", Category: "bakery", MinValue: 0.80, MaxValue: 2.20, Unit: "£"},
			{Name: "bag of sweets", Category: "confectionery", MinValue: 0.50, MaxValue: 2.00, Unit: "£"},
			{Name: "notebook", Category: "stationery", MinValue: 0.90, MaxValue: 3.50, Unit: "£"},
		},
		templates: []Template{
			{Format: "DIRECT_CALCULATION", Models: []string{"ADDITION"},
				Text: "{character} buys a {item} for {operand_1} and a {item_2} for {operand_2}. How much does {character} spend altogether?"},
			{Format: "DIRECT_CALCULATION", Models: []string{"SUBTRACTION"},
				Text: "{character} pays for a {item} costing {operand_2} with {operand_1}. How much change does {character} get?"},
			{Format: "DIRECT_CALCULATION", Models: []string{"MULTIPLICATION"},
				Text: "At {location}, {character} buys {operand_2} packs of {item} at {operand_1} each. What is the total cost?"},
			{Text: "{character} is shopping at {location}. {question}"},
		},
	},
	ThemeCooking: {
		settings: []Setting{
			{Location: "the kitchen", TimeOfDay: "Sunday afternoon", Atmosphere: "warm"},
			{Location: "the school cookery room", TimeOfDay: "morning", Atmosphere: "floury"},
		},
		roles: []string{"cook", "baker", "helper"},
		items: []Item{
			{Name: "flour", Category: "ingredient", MinValue: 100, MaxValue: 500, Unit: "g"},
			{Name: "sugar", Category: "ingredient", MinValue: 50, MaxValue: 250, Unit: "g"},
			{Name: "milk", Category: "ingredient", MinValue: 100, MaxValue: 600, Unit: "ml"},
			{Name: "egg", Category: "ingredient", MinValue: 1, MaxValue: 6, Unit: ""},
		},
		templates: []Template{
			{Format: "DIRECT_CALCULATION", Models: []string{"ADDITION"},
				Text: "A {recipe} needs {operand_1}g of {item} and {operand_2}g of {item_2}. How many grams is that in total?"},
			{Format: "DIRECT_CALCULATION", Models: []string{"DIVISION"},
				Text: "{character} shares {operand_1} cakes equally between {operand_2} plates. How many cakes go on each plate?"},
			{Text: "{character} is baking in {location}. {question}"},
		},
	},
	ThemeSports: {
		settings: []Setting{
			{Location: "the playing field", TimeOfDay: "sports day", Atmosphere: "cheering"},
			{Location: "the swimming pool", TimeOfDay: "after school", Atmosphere: "splashy"},
		},
		roles: []string{"runner", "captain", "goalkeeper", "swimmer"},
		items: []Item{
			{Name: "point", Category: "score", MinValue: 1, MaxValue: 100, Unit: ""},
			{Name: "lap", Category: "distance", MinValue: 1, MaxValue: 20, Unit: ""},
			{Name: "goal", Category: "score", MinValue: 1, MaxValue: 12, Unit: ""},
		},
		templates: []Template{
			{Format: "DIRECT_CALCULATION", Models: []string{"ADDITION"},
				Text: "{character}'s team scores {operand_1} points in the first half and {operand_2} in the second. What is the final score?"},
			{Format: "DIRECT_CALCULATION", Models: []string{"SUBTRACTION"},
				Text: "{character} has run {operand_2} of the {operand_1} laps in the race. How many laps are left?"},
			{Text: "At {location}, {character} is keeping score. {question}"},
		},
	},
	ThemeSchool: {
		settings: []Setting{
			{Location: "the classroom", TimeOfDay: "morning", Atmosphere: "quiet"},
			{Location: "the library", TimeOfDay: "lunchtime", Atmosphere: "calm"},
		},
		roles: []string{"pupil", "teacher", "librarian"},
		items: []Item{
			{Name: "pencil", Category: "stationery", MinValue: 1, MaxValue: 30, Unit: ""},
			{Name: "book", Category: "reading", MinValue: 1, MaxValue: 40, Unit: ""},
			{Name: "sticker", Category: "reward", MinValue: 1, MaxValue: 50, Unit: ""},
		},
		templates: []Template{
			{Format: "DIRECT_CALCULATION", Models: []string{"ADDITION"},
				Text: "There are {operand_1} books on one shelf and {operand_2} on another. How many books are there altogether?"},
			{Format: "DIRECT_CALCULATION", Models: []string{"MULTIPLICATION"},
				Text: "Each table in {location} has {operand_1} pupils and there are {operand_2} tables. How many pupils is that?"},
			{Text: "In {location}, {character} is counting. {question}"},
		},
	},
	ThemeNature: {
		settings: []Setting{
			{Location: "the woods", TimeOfDay: "early morning", Atmosphere: "misty"},
			{Location: "the pond", TimeOfDay: "afternoon", Atmosphere: "buzzing"},
		},
		roles: []string{"explorer", "birdwatcher", "ranger"},
		items: []Item{
			{Name: "acorn", Category: "seed", MinValue: 1, MaxValue: 100, Unit: ""},
			{Name: "tadpole", Category: "creature", MinValue: 1, MaxValue: 60, Unit: ""},
			{Name: "conker", Category: "seed", MinValue: 1, MaxValue: 80, Unit: ""},
		},
		templates: []Template{
			{Format: "DIRECT_CALCULATION", Models: []string{"ADDITION"},
				Text: "{character} collects {operand_1} acorns and then finds {operand_2} more. How many acorns does {character} have now?"},
			{Text: "{character} is exploring {location}. {question}"},
		},
	},
	ThemePocketMoney: {
		settings: []Setting{
			{Location: "home", TimeOfDay: "Saturday", Atmosphere: "hopeful"},
		},
		roles: []string{"saver", "spender"},
		items: []Item{
			{Name: "savings", Category: "money", MinValue: 0.50, MaxValue: 20, Unit: "£"},
			{Name: "toy", Category: "treat", MinValue: 1, MaxValue: 15, Unit: "£"},
		},
		templates: []Template{
			{Format: "DIRECT_CALCULATION", Models: []string{"ADDITION"},
				Text: "{character} has saved {operand_1} and earns {operand_2} more for washing the car. How much does {character} have now?"},
			{Format: "DIRECT_CALCULATION", Models: []string{"SUBTRACTION"},
				Text: "{character} has {operand_1} of pocket money and spends {operand_2} on a {item}. How much is left?"},
			{Text: "{character} is counting pocket money. {question}"},
		},
	},
	ThemeTravel: {
		settings: []Setting{
			{Location: "the railway station", TimeOfDay: "holiday morning", Atmosphere: "exciting"},
			{Location: "the coach", TimeOfDay: "midday", Atmosphere: "winding"},
		},
		roles: []string{"traveller", "conductor", "driver"},
		items: []Item{
			{Name: "ticket", Category: "travel", MinValue: 1, MaxValue: 25, Unit: "£"},
			{Name: "mile", Category: "distance", MinValue: 1, MaxValue: 200, Unit: ""},
		},
		templates: []Template{
			{Format: "DIRECT_CALCULATION", Models: []string{"SUBTRACTION"},
				Text: "The journey is {operand_1} miles long and the coach has travelled {operand_2} miles. How far is left to go?"},
			{Text: "On the way to {location}, {character} wonders: {question}"},
		},
	},
	ThemeGarden: {
		settings: []Setting{
			{Location: "the vegetable patch", TimeOfDay: "spring morning", Atmosphere: "muddy"},
			{Location: "the greenhouse", TimeOfDay: "afternoon", Atmosphere: "humid"},
		},
		roles: []string{"gardener", "helper"},
		items: []Item{
			{Name: "seed", Category: "planting", MinValue: 1, MaxValue: 100, Unit: ""},
			{Name: "flowerpot", Category: "planting", MinValue: 1, MaxValue: 30, Unit: ""},
			{Name: "strawberry", Category: "fruit", MinValue: 1, MaxValue: 60, Unit: ""},
		},
		templates: []Template{
			{Format: "DIRECT_CALCULATION", Models: []string{"DIVISION"},
				Text: "{character} plants {operand_1} seeds equally into {operand_2} flowerpots. How many seeds go in each pot?"},
			{Format: "DIRECT_CALCULATION", Models: []string{"MULTIPLICATION"},
				Text: "There are {operand_2} rows of {operand_1} strawberry plants in {location}. How many plants are there?"},
			{Text: "{character} is working in {location}. {question}"},
		},
	},
}

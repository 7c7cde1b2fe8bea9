package fuzzy

// defaultBrands holds observed shelf prices for brands that recur in
// supplier closeout lists. Multi-term entries require every term; the
// longest total keyword length wins when several entries match.
var defaultBrands = []Entry{
	{Terms: []string{"cheez", "it"}, Price: 4.49},
	{Terms: []string{"pop", "tart"}, Price: 3.98},
	{Terms: []string{"halls"}, Price: 2.97},
	{Terms: []string{"mccormick", "extract"}, Price: 5.47},
	{Terms: []string{"mccormick"}, Price: 1.98},
	{Terms: []string{"allrecipes"}, Price: 1.97},
	{Terms: []string{"knorr"}, Price: 2.48},
	{Terms: []string{"kool", "aid"}, Price: 1.87},
	{Terms: []string{"tootsie"}, Price: 2.99},
	{Terms: []string{"sour patch"}, Price: 3.47},
	{Terms: []string{"swedish fish"}, Price: 3.47},
	{Terms: []string{"love corn"}, Price: 8.97},
	{Terms: []string{"nutri", "grain"}, Price: 4.98},
	{Terms: []string{"jose cuervo"}, Price: 4.97},
	{Terms: []string{"french", "ketchup"}, Price: 6.98},
	{Terms: []string{"kamenstein", "grinder"}, Price: 24.97},
	{Terms: []string{"kamenstein"}, Price: 12.97},
	{Terms: []string{"frankford"}, Price: 1.97},
	{Terms: []string{"elf on"}, Price: 1.97},
	{Terms: []string{"transformers"}, Price: 2.97},
	{Terms: []string{"zatarain"}, Price: 1.87},
}

// defaultCategories covers generic product types when no brand matches.
var defaultCategories = []Entry{
	{Terms: []string{"cough drops"}, Price: 2.97},
	{Terms: []string{"hot chocolate"}, Price: 1.97},
	{Terms: []string{"candy cane"}, Price: 2.47},
	{Terms: []string{"candy"}, Price: 2.99},
	{Terms: []string{"bouillon"}, Price: 2.48},
	{Terms: []string{"seasoning"}, Price: 1.98},
	{Terms: []string{"spice"}, Price: 1.98},
	{Terms: []string{"grinder"}, Price: 12.97},
	{Terms: []string{"ketchup"}, Price: 3.48},
	{Terms: []string{"sauce"}, Price: 2.97},
	{Terms: []string{"drink mix"}, Price: 1.87},
}

package taxonomy

// Default returns the built-in taxonomy used when no config file is set.
func Default() Taxonomy {
	return Taxonomy{
		{
			Type: "Income",
			Categories: []Category{
				{Name: "Salary", Keywords: []string{"payroll", "salary", "direct deposit", "employer"}},
				{Name: "Interest", Keywords: []string{"interest", "dividend"}},
			},
		},
		{
			Type: "Expense",
			Categories: []Category{
				{Name: "Groceries", Keywords: []string{"walmart", "kroger", "aldi", "whole foods", "trader joe", "costco", "grocery", "meijer", "grocer"}},
				{Name: "Restaurants", Keywords: []string{"mcdonald", "burger king", "pizza", "cafe", "restaurant", "chick-fil-a", "taco bell", "doordash"}},
				{Name: "Transportation", Keywords: []string{"uber", "lyft", "shell", "exxon", "gas", "chevron", "bp", "mobil", "fuel", "transport"}},
				{Name: "Entertainment", Keywords: []string{"netflix", "spotify", "hulu", "amc"}},
				{Name: "Rent", Keywords: []string{"landlord", "apartment", "rent", "leasing", "property management"}},
				{Name: "Utilities", Keywords: []string{"electric", "water", "internet", "comcast", "utility"}},
			},
		},
	}
}

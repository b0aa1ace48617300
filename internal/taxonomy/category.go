package taxonomy

// Category is the closed set of expense categories.
type Category string

const (
	CategoryFood     Category = "Food"
	CategoryTravel   Category = "Travel"
	CategoryBills    Category = "Bills"
	CategoryShopping Category = "Shopping"
	CategoryOthers   Category = "Others"
)

// CategoryList is the canonical category order, used in prompts and schemas.
var CategoryList = []string{
	string(CategoryFood),
	string(CategoryTravel),
	string(CategoryBills),
	string(CategoryShopping),
	string(CategoryOthers),
}

var allowedCategories = func() map[string]struct{} {
	out := make(map[string]struct{}, len(CategoryList))
	for _, c := range CategoryList {
		out[c] = struct{}{}
	}
	return out
}()

// IsCategoryAllowed reports whether s is an exact member of the category set.
// Matching is case sensitive.
func IsCategoryAllowed(s string) bool {
	_, ok := allowedCategories[s]
	return ok
}

func (c Category) Valid() bool {
	return IsCategoryAllowed(string(c))
}

// Color is the badge colour used in rendered reports.
func (c Category) Color() string {
	switch c {
	case CategoryFood:
		return "#10B981"
	case CategoryTravel:
		return "#3B82F6"
	case CategoryBills:
		return "#EF4444"
	case CategoryShopping:
		return "#F59E0B"
	case CategoryOthers:
		return "#8B5CF6"
	default:
		return "#6B7280"
	}
}

package schema

// CategoriesTable represents the 'categories' table
type CategoriesTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	Slug        string
	CreatedAt   string
}

// Categories is the schema definition for categories
var Categories = CategoriesTable{
	Table:       "categories",
	ID:          "id",
	Name:        "name",
	Description: "description",
	Slug:        "slug",
	CreatedAt:   "created_at",
}

func (t CategoriesTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.Slug, t.CreatedAt}
}

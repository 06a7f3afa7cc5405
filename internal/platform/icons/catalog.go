package icons

// ID identifies an icon by intent.
type ID string

const (
	Edit     ID = "edit"
	Delete   ID = "delete"
	Filter   ID = "filter"
	Reload   ID = "reload"
	PrevPage ID = "prev-page"
	NextPage ID = "next-page"
	Users    ID = "users"
)

// Definition describes a core icon entry.
type Definition struct {
	ID          ID
	Name        string
	Description string
}

var catalog = []Definition{
	{ID: Edit, Name: "Edit", Description: "Open a record for editing."},
	{ID: Delete, Name: "Delete", Description: "Remove the selected records."},
	{ID: Filter, Name: "Filter", Description: "Filter the list."},
	{ID: Reload, Name: "Reload", Description: "Fetch the list again."},
	{ID: PrevPage, Name: "Previous page", Description: "Go to the previous page."},
	{ID: NextPage, Name: "Next page", Description: "Go to the next page."},
	{ID: Users, Name: "Users", Description: "The users collection."},
}

// Catalog returns a copy of the icon catalog definitions.
func Catalog() []Definition {
	result := make([]Definition, len(catalog))
	copy(result, catalog)
	return result
}

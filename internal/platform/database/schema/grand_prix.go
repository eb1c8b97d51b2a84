package schema

// GrandPrixTable represents the 'grand_prix' table
type GrandPrixTable struct {
	Table       string
	ID          string
	Name        string
	Country     string
	Circuit     string
	RaceDate    string
	Year        string
	Round       string
	IsCompleted string
}

// GrandPrix is the schema definition for grand_prix
var GrandPrix = GrandPrixTable{
	Table:       "grand_prix",
	ID:          "id",
	Name:        "name",
	Country:     "country",
	Circuit:     "circuit",
	RaceDate:    "race_date",
	Year:        "year",
	Round:       "round",
	IsCompleted: "is_completed",
}

func (t GrandPrixTable) Columns() []string {
	return []string{t.ID, t.Name, t.Country, t.Circuit, t.RaceDate, t.Year, t.Round, t.IsCompleted}
}

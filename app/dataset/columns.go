package dataset

// Columns names the columns of a dataset. Days and Rank are optional:
// leave them empty when the dataset has no such columns.
type Columns struct {
	Date  string
	Days  string
	Code  string
	Name  string
	Value string
	Rank  string
}

// StateColumns returns the columns of the per-country datasets, where
// entities are states.
func StateColumns(value, rank string) Columns {
	return Columns{
		Date:  "date",
		Days:  "days",
		Code:  "state_short",
		Name:  "state_name",
		Value: value,
		Rank:  rank,
	}
}

// CountryColumns returns the columns of the regional datasets, where
// entities are countries.
func CountryColumns(value string) Columns {
	return Columns{
		Date:  "date",
		Code:  "country_short",
		Name:  "country",
		Value: value,
	}
}

// required returns the names of the columns that must be present,
// in the order they are checked.
func (c Columns) required() []string {
	names := []string{c.Date, c.Code, c.Name, c.Value}

	for _, optional := range []string{c.Days, c.Rank} {
		if optional != "" {
			names = append(names, optional)
		}
	}

	return names
}

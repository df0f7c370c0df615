package model

// Record is one dataset row after cleaning.
//
// Name is the identifying field; a record with no name never survives
// cleaning. Category and Subcategory use the empty string for absent values
// (e.g. genre/platform for a games catalog, province/district for a registry
// extract). Year and Score tolerate absence as null values.
type Record struct {
	// Name is the stable row identifier (game name, region code, ...).
	Name string `json:"name"`
	// Category is the primary categorical field (genre, region, ...).
	Category string `json:"category,omitempty"`
	// Subcategory is the secondary categorical field (platform, district, ...).
	Subcategory string `json:"subcategory,omitempty"`
	// Year is the integer time dimension (release year, period, ...).
	Year Value `json:"year"`
	// Score is the primary numeric dimension (user rating, population, ...).
	Score Value `json:"score"`
	// Extra holds additional numeric columns declared via Mapping.ExtraColumns
	// (e.g. household/male/female counts for the registry variant).
	Extra map[string]Value `json:"extra,omitempty"`
}

// ExtraValue returns the named extra column, or null if not present.
func (r Record) ExtraValue(name string) Value {
	if r.Extra == nil {
		return Null()
	}
	v, ok := r.Extra[name]
	if !ok {
		return Null()
	}
	return v
}

// Mapping binds logical record fields to source column names.
//
// Callers declare the columns; the library never guesses from header
// substrings. A rename in the source file surfaces as an all-null column
// rather than a silently wrong one.
type Mapping struct {
	// NameColumn is the identifying column. Required.
	NameColumn string
	// CategoryColumn is the primary categorical column. Optional.
	CategoryColumn string
	// SubcategoryColumn is the secondary categorical column. Optional.
	SubcategoryColumn string
	// YearColumn is the integer time column. Optional.
	YearColumn string
	// ScoreColumn is the primary numeric column. Optional.
	ScoreColumn string
	// ExtraColumns are additional numeric columns carried into Record.Extra,
	// in declaration order (the order is preserved on export).
	ExtraColumns []string
}

// GamesMapping is the column binding for the games-catalog dataset variant.
var GamesMapping = Mapping{
	NameColumn:        "Game Name",
	CategoryColumn:    "Genre",
	SubcategoryColumn: "Platform",
	YearColumn:        "Release Year",
	ScoreColumn:       "User Rating",
}

// RegistryMapping is the column binding for the population/household registry
// dataset variant. Score carries the total population count.
var RegistryMapping = Mapping{
	NameColumn:   "Region",
	YearColumn:   "Period",
	ScoreColumn:  "Total Population",
	ExtraColumns: []string{"Households", "Male", "Female"},
}

// NumericColumns returns the numeric columns of the mapping in a stable
// order: year, score, then extras as declared.
func (m Mapping) NumericColumns() []string {
	cols := make([]string, 0, 2+len(m.ExtraColumns))
	if m.YearColumn != "" {
		cols = append(cols, m.YearColumn)
	}
	if m.ScoreColumn != "" {
		cols = append(cols, m.ScoreColumn)
	}
	cols = append(cols, m.ExtraColumns...)
	return cols
}

// Columns returns all mapped column names in export order.
func (m Mapping) Columns() []string {
	cols := make([]string, 0, 5+len(m.ExtraColumns))
	cols = append(cols, m.NameColumn)
	if m.CategoryColumn != "" {
		cols = append(cols, m.CategoryColumn)
	}
	if m.SubcategoryColumn != "" {
		cols = append(cols, m.SubcategoryColumn)
	}
	return append(cols, m.NumericColumns()...)
}

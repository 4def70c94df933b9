package models

// MappingProfile is a named rule set translating one raw schema into the
// canonical schema. Profiles are loaded from JSON files; the file name
// (minus extension) is the profile's identity.
type MappingProfile struct {
	// Name is derived from the file stem, not the JSON body.
	Name string `json:"-"`

	// Columns renames source columns to canonical names.
	Columns map[string]string `json:"columns"`

	// Normalizers maps a column to value-normalization rules:
	// canonical value -> accepted raw variants.
	Normalizers map[string]map[string][]string `json:"normalizers"`

	// Coercions maps a column to a type directive: date, float, int or bool.
	Coercions map[string]string `json:"coercions"`
}

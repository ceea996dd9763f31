package qn

import "strconv"

// Ident identifies a user, group or token either by numeric id or by name.
// It replaces the original platform's runtime type sniffing with an
// explicit variant accepted by every lookup.
type Ident struct {
	ID   int64
	Name string
}

// ByID builds an Ident from a numeric id. Ids are passed through lookups
// unvalidated, matching the original "already resolved" contract. Zero is
// not a valid id: ByID(0) degrades to an empty-name lookup since IsID
// keys off a nonzero id.
func ByID(id int64) Ident {
	return Ident{ID: id}
}

// ByName builds an Ident from a name.
func ByName(name string) Ident {
	return Ident{Name: name}
}

// IsID reports whether the Ident carries a numeric id.
func (i Ident) IsID() bool {
	return i.ID != 0
}

func (i Ident) String() string {
	if i.IsID() {
		return strconv.FormatInt(i.ID, 10)
	}
	return i.Name
}

package travel

// Query is the root destination input. At most one of Name and Coordinates is
// meaningful; Name wins when both are set. A Query with neither enables
// nothing downstream.
type Query struct {
	Name        string       `json:"name,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// IsZero reports whether the query carries neither a name nor coordinates.
func (q Query) IsZero() bool {
	return q.Name == "" && q.Coordinates == nil
}

// Keys holds the secondary query parameters derived from a resolved Location.
// Zero values mean "not derivable": dependent queries stay disabled on them.
type Keys struct {
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	CurrencyCode string       `json:"currency_code,omitempty"`
	CountryCode  string       `json:"country_code,omitempty"`
	DisplayName  string       `json:"display_name,omitempty"`
}

// Derive computes the dependent-query keys from the current Location and the
// raw query. It is pure and never fails: every missing field degrades to its
// zero value. Explicit user coordinates win over the country centroid when
// the query was coordinate-based.
func Derive(loc *Location, q Query) Keys {
	var k Keys

	if q.Name == "" && q.Coordinates != nil {
		c := *q.Coordinates
		k.Coordinates = &c
	}

	k.DisplayName = q.Name

	if loc == nil {
		return k
	}

	if k.Coordinates == nil && loc.Centroid != nil {
		c := *loc.Centroid
		k.Coordinates = &c
	}
	for code := range loc.Currencies {
		if k.CurrencyCode == "" || code < k.CurrencyCode {
			k.CurrencyCode = code
		}
	}
	k.CountryCode = loc.CountryCode
	k.DisplayName = firstNonEmpty(loc.Name, loc.OfficialName, q.Name)

	return k
}

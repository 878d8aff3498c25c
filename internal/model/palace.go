package model

// Palace is the root of one building's structural hierarchy. A palace
// contains floors, floors contain apartments and apartments contain the
// rooms where collaborators are housed.
//
// Fields:
//  ID           – entity identifier.
//  Name         – display name of the building.
//  SeriesNumber – display-ordering key; unique per tenant by convention
//                 but not enforced.
//  Floors       – ordered list of floors, renumbered on every structural
//                 edit.
type Palace struct {
	ID           ID       `json:"id"`
	Name         string   `json:"name"`
	SeriesNumber int      `json:"seriesNumber"`
	Floors       []*Floor `json:"floors"`
}

// Floor is one level of a palace. Number is positional (1-based and
// contiguous within the palace) and Name is derived from it, so both are
// recomputed by normalization after any structural edit.
type Floor struct {
	ID         ID           `json:"id"`
	Number     int          `json:"number"`
	Name       string       `json:"name"`
	Apartments []*Apartment `json:"apartments"`
}

// FindRoom locates a room anywhere under the palace. It returns the
// containing floor and apartment alongside the room, or nils when the id
// is not present.
func (p *Palace) FindRoom(id ID) (*Floor, *Apartment, *Room) {
	for _, f := range p.Floors {
		for _, a := range f.Apartments {
			for _, r := range a.Rooms {
				if r.ID == id {
					return f, a, r
				}
			}
		}
	}
	return nil, nil, nil
}

// FindApartment locates an apartment under the palace together with its
// floor, or nils when absent.
func (p *Palace) FindApartment(id ID) (*Floor, *Apartment) {
	for _, f := range p.Floors {
		for _, a := range f.Apartments {
			if a.ID == id {
				return f, a
			}
		}
	}
	return nil, nil
}

// FindFloor locates a floor by id, or nil when absent.
func (p *Palace) FindFloor(id ID) *Floor {
	for _, f := range p.Floors {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// Clone returns a deep copy of the palace subtree.
func (p *Palace) Clone() *Palace {
	cp := *p
	cp.Floors = make([]*Floor, len(p.Floors))
	for i, f := range p.Floors {
		cf := *f
		cf.Apartments = make([]*Apartment, len(f.Apartments))
		for j, a := range f.Apartments {
			cf.Apartments[j] = a.Clone()
		}
		cp.Floors[i] = &cf
	}
	return &cp
}

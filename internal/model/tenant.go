package model

// TenantDataset is the complete isolated state of one tenant namespace.
// The dataset exclusively owns its entire subtree; no component may retain
// references into it across operation boundaries. The shape is plain
// structured data so an external store can snapshot and restore it as is.
type TenantDataset struct {
	Palaces               []*Palace        `json:"palaces"`
	Collaborators         []*Collaborator  `json:"collaborators"`
	CollaboratorMovements []MovementRecord `json:"collaboratorMovements"`
}

// NewTenantDataset returns an empty dataset.
func NewTenantDataset() *TenantDataset {
	return &TenantDataset{
		Palaces:               []*Palace{},
		Collaborators:         []*Collaborator{},
		CollaboratorMovements: []MovementRecord{},
	}
}

// FindPalace locates a palace by id, or nil when absent.
func (ds *TenantDataset) FindPalace(id ID) *Palace {
	for _, p := range ds.Palaces {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindRoom locates a room anywhere in the dataset. It returns the full
// containment chain so callers can reason about the apartment and palace
// the room belongs to.
func (ds *TenantDataset) FindRoom(id ID) (*Palace, *Floor, *Apartment, *Room) {
	for _, p := range ds.Palaces {
		if f, a, r := p.FindRoom(id); r != nil {
			return p, f, a, r
		}
	}
	return nil, nil, nil, nil
}

// FindApartment locates an apartment anywhere in the dataset.
func (ds *TenantDataset) FindApartment(id ID) (*Palace, *Floor, *Apartment) {
	for _, p := range ds.Palaces {
		if f, a := p.FindApartment(id); a != nil {
			return p, f, a
		}
	}
	return nil, nil, nil
}

// FindCollaborator looks a collaborator up in the tenant's directory copy,
// or nil when absent.
func (ds *TenantDataset) FindCollaborator(id ID) *Collaborator {
	for _, c := range ds.Collaborators {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RoomOfCollaborator returns the room inside the given palace that holds
// the collaborator, or nils when the collaborator is unassigned in that
// building.
func (ds *TenantDataset) RoomOfCollaborator(p *Palace, collaboratorID ID) (*Apartment, *Room) {
	for _, f := range p.Floors {
		for _, a := range f.Apartments {
			for _, r := range a.Rooms {
				if r.HasCollaborator(collaboratorID) {
					return a, r
				}
			}
		}
	}
	return nil, nil
}

// Clone returns a deep copy of the whole dataset. The tenant store works
// on a clone and swaps it in on success so a failed operation never leaves
// partial state behind.
func (ds *TenantDataset) Clone() *TenantDataset {
	cp := &TenantDataset{
		Palaces:               make([]*Palace, len(ds.Palaces)),
		Collaborators:         make([]*Collaborator, len(ds.Collaborators)),
		CollaboratorMovements: append([]MovementRecord(nil), ds.CollaboratorMovements...),
	}
	for i, p := range ds.Palaces {
		cp.Palaces[i] = p.Clone()
	}
	for i, c := range ds.Collaborators {
		cc := *c
		cp.Collaborators[i] = &cc
	}
	return cp
}

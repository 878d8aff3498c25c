package model

// ApartmentStatus enumerates the service states of an apartment.
type ApartmentStatus string

const (
	ApartmentActive       ApartmentStatus = "active"
	ApartmentOutOfService ApartmentStatus = "out_of_service"
)

// Apartment is a sub-unit of a floor containing one or more rooms. An
// apartment can be taken out of service as a whole, which blocks new room
// assignments inside it.
//
// Fields:
//  ID               – entity identifier.
//  Number           – positional key, 1-based and contiguous within the
//                     floor; recomputed by normalization.
//  Name             – display name; defaulted from Number when empty.
//  Status           – active or out_of_service.
//  OutOfServiceNote – reason the apartment is out of service; cleared
//                     whenever the apartment returns to active.
//  Rooms            – the rooms contained in this apartment.
type Apartment struct {
	ID               ID              `json:"id"`
	Number           int             `json:"number"`
	Name             string          `json:"name"`
	Status           ApartmentStatus `json:"status"`
	OutOfServiceNote string          `json:"outOfServiceNote,omitempty"`
	Rooms            []*Room         `json:"rooms"`
}

// OutOfService reports whether the apartment is currently out of service.
func (a *Apartment) OutOfService() bool {
	return a.Status == ApartmentOutOfService
}

// FindRoom locates a room directly inside this apartment, or nil.
func (a *Apartment) FindRoom(id ID) *Room {
	for _, r := range a.Rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Clone returns a deep copy of the apartment and its rooms.
func (a *Apartment) Clone() *Apartment {
	ca := *a
	ca.Rooms = make([]*Room, len(a.Rooms))
	for i, r := range a.Rooms {
		ca.Rooms[i] = r.Clone()
	}
	return &ca
}

package engine

import (
	"fmt"
	"strings"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

// Default child counts used when a creation request leaves them out.
const (
	defaultFloors       = 1
	defaultApartments   = 1
	defaultRooms        = 2
	defaultRoomCapacity = 2
)

// CreatePalaceInput carries the parameters for CreatePalace. Zero counts
// fall back to the seeded defaults.
type CreatePalaceInput struct {
	Name           string
	SeriesNumber   int
	Floors         int
	ApartmentsEach int
	RoomsEach      int
	RoomCapacity   int
}

// CreatePalace builds a new palace seeded with the requested child counts
// and appends it to the dataset. The resulting subtree is normalized
// before the mutation is committed.
func (e *Engine) CreatePalace(ds *model.TenantDataset, in CreatePalaceInput) (*model.Palace, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: palace name is required", ErrValidation)
	}
	if in.Floors < 0 || in.ApartmentsEach < 0 || in.RoomsEach < 0 || in.RoomCapacity < 0 {
		return nil, fmt.Errorf("%w: child counts must not be negative", ErrValidation)
	}
	floors := in.Floors
	if floors == 0 {
		floors = defaultFloors
	}
	apts := in.ApartmentsEach
	if apts == 0 {
		apts = defaultApartments
	}
	rooms := in.RoomsEach
	if rooms == 0 {
		rooms = defaultRooms
	}
	capacity := in.RoomCapacity
	if capacity == 0 {
		capacity = defaultRoomCapacity
	}

	p := &model.Palace{
		ID:           model.NewID(),
		Name:         name,
		SeriesNumber: in.SeriesNumber,
		Floors:       make([]*model.Floor, 0, floors),
	}
	for i := 0; i < floors; i++ {
		f := &model.Floor{ID: model.NewID(), Apartments: make([]*model.Apartment, 0, apts)}
		for j := 0; j < apts; j++ {
			f.Apartments = append(f.Apartments, newApartment(rooms, capacity))
		}
		p.Floors = append(p.Floors, f)
	}
	if _, err := e.Normalize(ds, p); err != nil {
		return nil, err
	}
	ds.Palaces = append(ds.Palaces, p)
	return p, nil
}

func newApartment(rooms, capacity int) *model.Apartment {
	a := &model.Apartment{
		ID:     model.NewID(),
		Status: model.ApartmentActive,
		Rooms:  make([]*model.Room, 0, rooms),
	}
	for k := 0; k < rooms; k++ {
		a.Rooms = append(a.Rooms, &model.Room{
			ID:              model.NewID(),
			Name:            fmt.Sprintf("Habitación %d", k+1),
			Capacity:        capacity,
			Status:          model.RoomAvailable,
			CollaboratorIDs: []model.ID{},
			Collaborators:   []model.Collaborator{},
		})
	}
	return a
}

// ReplacePalace swaps a palace's entire subtree for the supplied payload,
// persisting any provisional ids the client minted along the way. The new
// subtree is normalized and validated before the old one is released.
func (e *Engine) ReplacePalace(ds *model.TenantDataset, id model.ID, next *model.Palace) (*model.Palace, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	cur := ds.FindPalace(id)
	if cur == nil {
		return nil, fmt.Errorf("%w: palace %s", ErrNotFound, id)
	}
	if next == nil {
		return nil, fmt.Errorf("%w: palace payload is required", ErrValidation)
	}
	next.ID = id
	persistIDs(next)
	if _, err := e.Normalize(ds, next); err != nil {
		return nil, err
	}
	if err := checkPalaceSlots(next); err != nil {
		return nil, err
	}
	for i, p := range ds.Palaces {
		if p.ID == id {
			ds.Palaces[i] = next
			break
		}
	}
	return next, nil
}

// persistIDs replaces provisional ids in a subtree with freshly minted
// persisted ones.
func persistIDs(p *model.Palace) {
	for _, f := range p.Floors {
		f.ID = f.ID.Persist()
		for _, a := range f.Apartments {
			a.ID = a.ID.Persist()
			for _, r := range a.Rooms {
				r.ID = r.ID.Persist()
			}
		}
	}
}

// checkPalaceSlots verifies the slot invariant over every room of a
// palace. Used when an entire subtree arrives from outside the engine.
func checkPalaceSlots(p *model.Palace) error {
	for _, f := range p.Floors {
		for _, a := range f.Apartments {
			for _, r := range a.Rooms {
				if err := checkRoom(r); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// DeletePalace removes a palace from the dataset.
func (e *Engine) DeletePalace(ds *model.TenantDataset, id model.ID) error {
	if ds == nil {
		return ErrTenantIsolation
	}
	for i, p := range ds.Palaces {
		if p.ID == id {
			ds.Palaces = append(ds.Palaces[:i], ds.Palaces[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: palace %s", ErrNotFound, id)
}

// AddFloor appends a floor seeded with default apartments to a palace and
// renumbers the palace.
func (e *Engine) AddFloor(ds *model.TenantDataset, palaceID model.ID) (*model.Floor, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	p := ds.FindPalace(palaceID)
	if p == nil {
		return nil, fmt.Errorf("%w: palace %s", ErrNotFound, palaceID)
	}
	f := &model.Floor{ID: model.NewID(), Apartments: []*model.Apartment{newApartment(defaultRooms, defaultRoomCapacity)}}
	p.Floors = append(p.Floors, f)
	if _, err := e.Normalize(ds, p); err != nil {
		return nil, err
	}
	return f, nil
}

// RemoveFloor deletes a floor. The last floor of a palace cannot be
// removed.
func (e *Engine) RemoveFloor(ds *model.TenantDataset, palaceID, floorID model.ID) error {
	if ds == nil {
		return ErrTenantIsolation
	}
	p := ds.FindPalace(palaceID)
	if p == nil {
		return fmt.Errorf("%w: palace %s", ErrNotFound, palaceID)
	}
	if len(p.Floors) <= 1 {
		return fmt.Errorf("%w: a palace keeps at least one floor", ErrStructural)
	}
	for i, f := range p.Floors {
		if f.ID == floorID {
			p.Floors = append(p.Floors[:i], p.Floors[i+1:]...)
			_, err := e.Normalize(ds, p)
			return err
		}
	}
	return fmt.Errorf("%w: floor %s", ErrNotFound, floorID)
}

// AddApartment appends an apartment seeded with default rooms to a floor
// and renumbers the floor's apartments.
func (e *Engine) AddApartment(ds *model.TenantDataset, palaceID, floorID model.ID, name string) (*model.Apartment, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	p := ds.FindPalace(palaceID)
	if p == nil {
		return nil, fmt.Errorf("%w: palace %s", ErrNotFound, palaceID)
	}
	f := p.FindFloor(floorID)
	if f == nil {
		return nil, fmt.Errorf("%w: floor %s", ErrNotFound, floorID)
	}
	a := newApartment(defaultRooms, defaultRoomCapacity)
	a.Name = strings.TrimSpace(name)
	f.Apartments = append(f.Apartments, a)
	if _, err := e.Normalize(ds, p); err != nil {
		return nil, err
	}
	return a, nil
}

// RemoveApartment deletes an apartment. The last apartment of a floor
// cannot be removed.
func (e *Engine) RemoveApartment(ds *model.TenantDataset, apartmentID model.ID) error {
	if ds == nil {
		return ErrTenantIsolation
	}
	p, f, a := ds.FindApartment(apartmentID)
	if a == nil {
		return fmt.Errorf("%w: apartment %s", ErrNotFound, apartmentID)
	}
	if len(f.Apartments) <= 1 {
		return fmt.Errorf("%w: a floor keeps at least one apartment", ErrStructural)
	}
	for i, cur := range f.Apartments {
		if cur.ID == apartmentID {
			f.Apartments = append(f.Apartments[:i], f.Apartments[i+1:]...)
			break
		}
	}
	_, err := e.Normalize(ds, p)
	return err
}

// AddRoom appends a room to an apartment.
func (e *Engine) AddRoom(ds *model.TenantDataset, apartmentID model.ID, name string, capacity int) (*model.Room, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	p, _, a := ds.FindApartment(apartmentID)
	if a == nil {
		return nil, fmt.Errorf("%w: apartment %s", ErrNotFound, apartmentID)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("%w: room capacity must be at least 1", ErrValidation)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Habitación %d", len(a.Rooms)+1)
	}
	r := &model.Room{
		ID:              model.NewID(),
		Name:            name,
		Capacity:        capacity,
		Status:          model.RoomAvailable,
		CollaboratorIDs: []model.ID{},
		Collaborators:   []model.Collaborator{},
	}
	a.Rooms = append(a.Rooms, r)
	if _, err := e.Normalize(ds, p); err != nil {
		return nil, err
	}
	return r, nil
}

// RemoveRoom deletes a room. The last room of an apartment cannot be
// removed.
func (e *Engine) RemoveRoom(ds *model.TenantDataset, roomID model.ID) error {
	if ds == nil {
		return ErrTenantIsolation
	}
	p, _, a, r := ds.FindRoom(roomID)
	if r == nil {
		return fmt.Errorf("%w: room %s", ErrNotFound, roomID)
	}
	if len(a.Rooms) <= 1 {
		return fmt.Errorf("%w: an apartment keeps at least one room", ErrStructural)
	}
	for i, cur := range a.Rooms {
		if cur.ID == roomID {
			a.Rooms = append(a.Rooms[:i], a.Rooms[i+1:]...)
			break
		}
	}
	_, err := e.Normalize(ds, p)
	return err
}

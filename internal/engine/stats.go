package engine

import (
	"fmt"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

// PalaceStats aggregates room counts at palace level.
//
// An apartment that is out of service reports all of its rooms under
// Maintenance regardless of each room's own status field. That override
// lives here, at the aggregation layer; the room objects themselves are
// not touched.
type PalaceStats struct {
	Occupied        int `json:"occupied"`
	Available       int `json:"available"`
	Maintenance     int `json:"maintenance"`
	OutOfService    int `json:"outOfService"`
	TotalRooms      int `json:"totalRooms"`
	TotalApartments int `json:"totalApartments"`
	FreeSlots       int `json:"freeSlots"`
}

// Stats computes palace-level occupancy statistics.
func (e *Engine) Stats(p *model.Palace) PalaceStats {
	var s PalaceStats
	for _, f := range p.Floors {
		for _, a := range f.Apartments {
			s.TotalApartments++
			oos := a.OutOfService()
			if oos {
				s.OutOfService++
			}
			for _, r := range a.Rooms {
				s.TotalRooms++
				if oos {
					s.Maintenance++
					continue
				}
				switch r.Status {
				case model.RoomOccupied:
					s.Occupied++
				case model.RoomMaintenance:
					s.Maintenance++
				default:
					s.Available++
				}
				s.FreeSlots += r.FreeSlots()
			}
		}
	}
	return s
}

// StatsByID is the id-resolving form of Stats.
func (e *Engine) StatsByID(ds *model.TenantDataset, palaceID model.ID) (PalaceStats, error) {
	if ds == nil {
		return PalaceStats{}, ErrTenantIsolation
	}
	p := ds.FindPalace(palaceID)
	if p == nil {
		return PalaceStats{}, fmt.Errorf("%w: palace %s", ErrNotFound, palaceID)
	}
	return e.Stats(p), nil
}

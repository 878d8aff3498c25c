package model

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// localPrefix marks identifiers that were minted by a client before the
// entity was committed. The prefix survives the wire format so existing
// clients keep working, but inside the process the distinction is carried
// by the ID type itself rather than by string inspection.
const localPrefix = "tmp-"

// ErrBadID is returned when an identifier string is empty or malformed.
var ErrBadID = errors.New("malformed entity id")

// ID identifies an entity within a tenant dataset. An ID is either
// persisted (a server-minted UUID) or local (a provisional client-side
// identifier that has not been committed yet). The zero value is the
// absent ID.
type ID struct {
	value string
	local bool
}

// NewID mints a persisted identifier.
func NewID() ID {
	return ID{value: uuid.NewString()}
}

// NewLocalID mints a provisional client-side identifier.
func NewLocalID() ID {
	return ID{value: uuid.NewString(), local: true}
}

// ParseID converts a wire-format identifier into an ID. Strings carrying
// the tmp- prefix become local IDs; anything else is treated as persisted.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ID{}, ErrBadID
	}
	if rest, ok := strings.CutPrefix(s, localPrefix); ok {
		if rest == "" {
			return ID{}, ErrBadID
		}
		return ID{value: rest, local: true}, nil
	}
	return ID{value: s}, nil
}

// IsLocal reports whether the ID is a provisional client-side identifier.
func (id ID) IsLocal() bool { return id.local }

// IsZero reports whether the ID is absent.
func (id ID) IsZero() bool { return id.value == "" }

// String renders the wire form, restoring the tmp- prefix for local IDs.
func (id ID) String() string {
	if id.local {
		return localPrefix + id.value
	}
	return id.value
}

// Persist returns a persisted copy of the ID. Local IDs are replaced by a
// freshly minted UUID; persisted IDs are returned unchanged.
func (id ID) Persist() ID {
	if id.local || id.value == "" {
		return NewID()
	}
	return id
}

// MarshalJSON encodes the ID in its wire form.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON decodes an ID from its wire form. An empty string decodes
// to the zero ID so optional fields round-trip cleanly.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*id = ID{}
		return nil
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

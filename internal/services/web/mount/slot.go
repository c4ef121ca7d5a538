package mount

import "errors"

const (
	// HostSlotID is the id of the element units are mounted into.
	HostSlotID = "root"
	// UnitAttribute names the unit requested by the host slot.
	UnitAttribute = "data-component"
)

// ErrSlotOccupied is returned by Slot.Mount when the slot already holds a unit.
var ErrSlotOccupied = errors.New("host slot already mounted")

// Host exposes a page's host slot. Implementations look the slot up at most
// once and return the same slot on every call.
type Host interface {
	HostSlot() (Slot, bool)
}

// Slot is the single mount point of a page.
type Slot interface {
	// UnitName returns the requested unit name, or "" when none is declared.
	UnitName() string
	// Claim reserves the slot for one mount. Only the first call returns true.
	Claim() bool
	// Mount inserts rendered unit HTML into the slot.
	Mount(fragment []byte) error
}

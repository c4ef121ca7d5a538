// Package mount resolves a page's requested UI unit by name and mounts it
// into the page's single host slot.
//
// Pages are served as static shells. A shell that needs a dynamic unit
// carries one element with id "root" whose data-component attribute names
// the unit. The Dispatcher looks the name up in an immutable Registry,
// obtains the unit through its Loader on a separate goroutine and renders it
// into the slot. Every outcome (no slot, unknown unit, load failure, success)
// is reported through a Reporter and never escapes as an error or panic, so
// a broken unit cannot take the rest of the page down with it.
package mount

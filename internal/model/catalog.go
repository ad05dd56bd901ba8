package model

// Category is a page-location grouping (Home, PLP, ...).  Prefix is the
// first token of a generated hid.  Nothing references categories by id, so
// they can be edited or removed freely.
type Category struct {
	ID     uint64 // categories.id
	Name   string // categories.name (unique)
	Prefix string // categories.prefix
}

// ComponentType is a named UI component kind.  Code is the second token of
// a generated hid.  A type owns its slot positions in type_orders; the
// cascade on delete is manual, positions go first.
type ComponentType struct {
	ID   uint64 // types.id
	Name string // types.name
	Code string // types.code (unique)
}

// Position is one allowed slot number for a component type.  The pair
// (TypeID, OrderNo) is unique and OrderNo is 1-based.
type Position struct {
	ID      uint64 // type_orders.id
	TypeID  uint64 // type_orders.type_id
	OrderNo int    // type_orders.order_no
}

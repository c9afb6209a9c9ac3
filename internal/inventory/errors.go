package inventory

import "errors"

// Business-rule errors surfaced to callers as client errors. They are never
// retried automatically; the caller must resubmit with corrected input.
var (
	// ErrInsufficientStock is returned when a conditional stock decrement
	// matches no row: either the variant does not exist for the tenant or
	// its stock is below the requested quantity. The two cases are
	// deliberately indistinguishable.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrOverReceive is returned when a receipt exceeds the quantity still
	// outstanding on a purchase order item.
	ErrOverReceive = errors.New("receiving more than ordered quantity")

	// ErrItemNotInOrder is returned when a receipt names a variant that is
	// not part of the purchase order.
	ErrItemNotInOrder = errors.New("variant not part of this purchase order")

	// ErrInvalidSupplier is returned when a purchase order references a
	// supplier the tenant does not own.
	ErrInvalidSupplier = errors.New("invalid supplier for this tenant")

	// ErrInvalidProduct is returned when a purchase order item references a
	// product or variant the tenant does not own.
	ErrInvalidProduct = errors.New("invalid product for this tenant")

	// ErrOrderNotReceivable is returned when receiving against an order that
	// is not CONFIRMED.
	ErrOrderNotReceivable = errors.New("purchase order is not confirmed")

	// ErrInvalidTransition is returned for a status change that does not
	// move the order forward through DRAFT -> SENT -> CONFIRMED.
	ErrInvalidTransition = errors.New("invalid purchase order status transition")

	// ErrInvalidQuantity is returned for zero or negative quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrNoItems is returned when a purchase order is created without items.
	ErrNoItems = errors.New("purchase order must have at least one item")

	// ErrNotFound is returned when an entity does not exist for the tenant.
	// An id owned by another tenant behaves identically to a nonexistent id.
	ErrNotFound = errors.New("not found")
)

package catalog

import (
	"fmt"
	"strings"
)

// LoadError reports a malformed or unreadable catalog source. It is fatal:
// the process must not start with a partial catalog.
type LoadError struct {
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("catalog load failed at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("catalog load failed: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NotFoundError reports an unknown product identifier.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ID)
}

// InvalidEmbroideryTypeError reports a pricing request for an embroidery
// type the product does not carry. Valid enumerates the types it does.
type InvalidEmbroideryTypeError struct {
	ID        string
	Requested string
	Valid     []EmbroideryType
}

func (e *InvalidEmbroideryTypeError) Error() string {
	valid := make([]string, 0, len(e.Valid))
	for _, t := range e.Valid {
		valid = append(valid, string(t))
	}
	return fmt.Sprintf("embroidery type %q is not available for product %s (valid: %s)",
		e.Requested, e.ID, strings.Join(valid, ", "))
}

// InvalidQuantityError reports a non-positive order quantity.
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be positive, got %d", e.Quantity)
}

// BelowMinimumOrderError reports a quantity under the smallest breakpoint.
type BelowMinimumOrderError struct {
	ID             string
	EmbroideryType EmbroideryType
	Quantity       int
	Minimum        int
}

func (e *BelowMinimumOrderError) Error() string {
	return fmt.Sprintf("quantity %d is below the minimum order of %d units for product %s (%s embroidery)",
		e.Quantity, e.Minimum, e.ID, e.EmbroideryType)
}

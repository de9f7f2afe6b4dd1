package invoice

import (
	"errors"
	"fmt"
)

// ErrOrderNotFound is returned when an order id does not resolve to a row,
// or the order lookup itself failed. Match with errors.Is.
var ErrOrderNotFound = errors.New("order not found")

// NotFoundError carries the order id and the underlying lookup failure so the
// HTTP layer can surface the cause in its 404 body.
type NotFoundError struct {
	OrderID string
	Err     error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Order not found: %s (%v)", e.OrderID, e.Err)
	}
	return fmt.Sprintf("Order not found: %s", e.OrderID)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

func (e *NotFoundError) Is(target error) bool { return target == ErrOrderNotFound }

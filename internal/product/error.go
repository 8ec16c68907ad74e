package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotOwner        = errors.New("not the owner of this product")
	ErrProductInOrders = errors.New("product is referenced in orders")

	// -- Constants (External Systems) --
	PgForeignKeyViolation = "23503"
)

package domain

import "time"

// Product is a catalog item. PriceCents avoids float rounding on money.
type Product struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
	Active      bool
	CreatedAt   time.Time
}

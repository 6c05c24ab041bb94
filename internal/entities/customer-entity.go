package entities

import (
	"github.com/aarondl/null/v8"
)

// Customer is aggregated by the warranty API from warranty registrations,
// keyed by email.
type Customer struct {
	CustomerName        null.String `json:"customer_name"`
	CustomerEmail       string      `json:"customer_email"`
	CustomerPhone       null.String `json:"customer_phone"`
	CustomerAddress     null.String `json:"customer_address"`
	TotalWarranties     FlexNumber  `json:"total_warranties"`
	ValidatedWarranties FlexNumber  `json:"validated_warranties"`
	PendingWarranties   FlexNumber  `json:"pending_warranties"`
	RejectedWarranties  FlexNumber  `json:"rejected_warranties"`
	RegisteredAt        null.String `json:"registered_at"`
	FirstWarrantyDate   null.String `json:"first_warranty_date"`
	LastWarrantyDate    null.String `json:"last_warranty_date"`

	Extra Extra `json:"-"`
}

type customerAlias Customer

func (c *Customer) UnmarshalJSON(b []byte) error {
	return unmarshalWithExtra(b, (*customerAlias)(c), &c.Extra)
}

func (c Customer) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(customerAlias(c), c.Extra)
}

// Since is the registration date, falling back to the first warranty.
func (c Customer) Since() string {
	if c.RegisteredAt.Valid && c.RegisteredAt.String != "" {
		return c.RegisteredAt.String
	}
	return c.FirstWarrantyDate.String
}

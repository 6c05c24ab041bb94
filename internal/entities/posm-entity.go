package entities

import (
	"github.com/aarondl/null/v8"
)

var POSMStatuses = []string{"open", "under_review", "approved", "in_production", "dispatched", "delivered", "closed", "rejected"}

// POSMRequest is a franchise request for point-of-sale material.
type POSMRequest struct {
	ID            FlexString  `json:"id"`
	TicketID      null.String `json:"ticket_id"`
	FranchiseID   FlexString  `json:"franchise_id"`
	StoreName     null.String `json:"store_name"`
	ContactName   null.String `json:"contact_name"`
	ContactEmail  null.String `json:"contact_email"`
	Requirement   null.String `json:"requirement"`
	Status        string      `json:"status"`
	InternalNotes null.String `json:"internal_notes"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     null.String `json:"updated_at"`

	Extra Extra `json:"-"`
}

type posmAlias POSMRequest

func (p *POSMRequest) UnmarshalJSON(b []byte) error {
	return unmarshalWithExtra(b, (*posmAlias)(p), &p.Extra)
}

func (p POSMRequest) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(posmAlias(p), p.Extra)
}

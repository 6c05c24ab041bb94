package entities

import (
	"github.com/aarondl/null/v8"
)

// Manpower is an applicator working for a franchise.
type Manpower struct {
	ID                FlexString  `json:"id"`
	VendorID          FlexString  `json:"vendor_id"`
	Name              null.String `json:"name"`
	PhoneNumber       null.String `json:"phone_number"`
	ManpowerID        null.String `json:"manpower_id"`
	ApplicatorType    null.String `json:"applicator_type"`
	IsActive          FlexBool    `json:"is_active"`
	Points            FlexNumber  `json:"points"`
	PendingPoints     FlexNumber  `json:"pending_points"`
	RejectedPoints    FlexNumber  `json:"rejected_points"`
	TotalApplications FlexNumber  `json:"total_applications"`
	CreatedAt         string      `json:"created_at"`

	Extra Extra `json:"-"`
}

type manpowerAlias Manpower

func (m *Manpower) UnmarshalJSON(b []byte) error {
	return unmarshalWithExtra(b, (*manpowerAlias)(m), &m.Extra)
}

func (m Manpower) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(manpowerAlias(m), m.Extra)
}

func (m Manpower) ActivityStatus() string {
	if m.IsActive {
		return "active"
	}
	return "inactive"
}

package entities

import (
	"github.com/aarondl/null/v8"
)

var GrievanceStatuses = []string{"submitted", "under_review", "in_progress", "resolved", "rejected"}

// GrievanceCategories maps category codes to their labels.
var GrievanceCategories = map[string]string{
	"product_issue":  "Product Issue",
	"billing_issue":  "Billing Issue",
	"store_issue":    "Store/Dealer Issue",
	"manpower_issue": "Manpower Issue",
	"service_issue":  "Service Issue",
	"warranty_issue": "Warranty Issue",
	"other":          "Other",
}

const GrievanceSourceFranchise = "franchise"

type Grievance struct {
	ID               FlexString  `json:"id"`
	TicketID         null.String `json:"ticket_id"`
	CustomerName     null.String `json:"customer_name"`
	CustomerEmail    null.String `json:"customer_email"`
	FranchiseName    null.String `json:"franchise_name"`
	Category         string      `json:"category"`
	SubCategory      null.String `json:"sub_category"`
	Subject          null.String `json:"subject"`
	Description      null.String `json:"description"`
	Status           string      `json:"status"`
	AssignedTo       null.String `json:"assigned_to"`
	FranchiseRemarks null.String `json:"franchise_remarks"`
	AdminRemarks     null.String `json:"admin_remarks"`
	AdminNotes       null.String `json:"admin_notes"`
	SourceType       null.String `json:"source_type"`
	Department       null.String `json:"department"`
	CreatedAt        string      `json:"created_at"`
	UpdatedAt        null.String `json:"updated_at"`
	StatusUpdatedAt  null.String `json:"status_updated_at"`
	ResolvedAt       null.String `json:"resolved_at"`

	Extra Extra `json:"-"`
}

type grievanceAlias Grievance

func (g *Grievance) UnmarshalJSON(b []byte) error {
	return unmarshalWithExtra(b, (*grievanceAlias)(g), &g.Extra)
}

func (g Grievance) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(grievanceAlias(g), g.Extra)
}

// CategoryLabel falls back to the raw code for unknown categories.
func (g Grievance) CategoryLabel() string {
	if label, ok := GrievanceCategories[g.Category]; ok {
		return label
	}
	return g.Category
}

// Source is "franchise" for tickets raised by a store, else "customer".
func (g Grievance) Source() string {
	if g.SourceType.String == GrievanceSourceFranchise {
		return GrievanceSourceFranchise
	}
	return "customer"
}

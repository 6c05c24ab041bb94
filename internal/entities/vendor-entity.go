package entities

import (
	"github.com/aarondl/null/v8"
)

const (
	VendorApproved    = "approved"
	VendorDisapproved = "disapproved"
	VendorPending     = "pending"
)

// Vendor is a franchise store together with its warranty counters.
type Vendor struct {
	ID                  FlexString  `json:"id"`
	StoreName           null.String `json:"store_name"`
	StoreEmail          null.String `json:"store_email"`
	ContactName         null.String `json:"contact_name"`
	VendorName          null.String `json:"vendor_name"`
	Email               null.String `json:"email"`
	PhoneNumber         null.String `json:"phone_number"`
	City                null.String `json:"city"`
	State               null.String `json:"state"`
	Address             null.String `json:"address"`
	FullAddress         null.String `json:"full_address"`
	Pincode             FlexString  `json:"pincode"`
	IsVerified          FlexBool    `json:"is_verified"`
	VerifiedAt          null.String `json:"verified_at"`
	RejectionReason     null.String `json:"rejection_reason"`
	ManpowerCount       FlexNumber  `json:"manpower_count"`
	ManpowerNames       null.String `json:"manpower_names"`
	TotalWarranties     FlexNumber  `json:"total_warranties"`
	ValidatedWarranties FlexNumber  `json:"validated_warranties"`
	PendingWarranties   FlexNumber  `json:"pending_warranties"`
	RejectedWarranties  FlexNumber  `json:"rejected_warranties"`
	CreatedAt           string      `json:"created_at"`

	Extra Extra `json:"-"`
}

type vendorAlias Vendor

func (v *Vendor) UnmarshalJSON(b []byte) error {
	return unmarshalWithExtra(b, (*vendorAlias)(v), &v.Extra)
}

func (v Vendor) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(vendorAlias(v), v.Extra)
}

// VerificationStatus derives the review state: verified is approved, a
// verification date without the flag means it was disapproved.
func (v Vendor) VerificationStatus() string {
	switch {
	case bool(v.IsVerified):
		return VendorApproved
	case v.VerifiedAt.Valid && v.VerifiedAt.String != "":
		return VendorDisapproved
	default:
		return VendorPending
	}
}

package entities

import (
	"encoding/json"
	"strings"

	"github.com/aarondl/null/v8"

	"warranty-console/pkg/listview"
)

const (
	WarrantyPending       = "pending"
	WarrantyPendingVendor = "pending_vendor"
	WarrantyValidated     = "validated"
	WarrantyRejected      = "rejected"
)

// WarrantyActionStatuses are the states an admin can move a warranty to.
var WarrantyActionStatuses = []string{WarrantyValidated, WarrantyRejected, WarrantyPending}

type Warranty struct {
	ID                 FlexString      `json:"id"`
	UID                null.String     `json:"uid"`
	Status             string          `json:"status"`
	ProductType        string          `json:"product_type"`
	ProductName        null.String     `json:"product_name"`
	ProductDetails     json.RawMessage `json:"product_details"`
	CustomerName       null.String     `json:"customer_name"`
	CustomerEmail      null.String     `json:"customer_email"`
	CustomerPhone      null.String     `json:"customer_phone"`
	CarMake            null.String     `json:"car_make"`
	CarModel           null.String     `json:"car_model"`
	CarYear            FlexString      `json:"car_year"`
	CarReg             null.String     `json:"car_reg"`
	RegistrationNumber null.String     `json:"registration_number"`
	VendorStoreName    null.String     `json:"vendor_store_name"`
	VendorStoreEmail   null.String     `json:"vendor_store_email"`
	StoreName          null.String     `json:"store_name"`
	InstallerContact   null.String     `json:"installer_contact"`
	ManpowerNameFromDB null.String     `json:"manpower_name_from_db"`
	RejectionReason    null.String     `json:"rejection_reason"`
	PurchaseDate       null.String     `json:"purchase_date"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          null.String     `json:"updated_at"`

	Extra Extra `json:"-"`
}

type warrantyAlias Warranty

func (w *Warranty) UnmarshalJSON(b []byte) error {
	return unmarshalWithExtra(b, (*warrantyAlias)(w), &w.Extra)
}

func (w Warranty) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(warrantyAlias(w), w.Extra)
}

// Key is the action target: the uid when there is one, else the id.
func (w Warranty) Key() string {
	if w.UID.Valid && w.UID.String != "" {
		return w.UID.String
	}
	return w.ID.String()
}

// Details decodes product_details. Malformed content yields an empty map.
func (w Warranty) Details() listview.Details {
	return listview.ParseDetails(detailsOf(w.ProductDetails))
}

// ProductLabel is the product name shown in lists: the catalogue name in
// the details, else the product type.
func (w Warranty) ProductLabel() string {
	return listview.Coalesce(w.Details().Text("product", "productName"), w.ProductName.String, w.ProductType)
}

// IsPPF reports whether the warranty belongs to the paint-protection tab.
// EV products are registered with PPF details.
func (w Warranty) IsPPF() bool {
	t := strings.ToLower(w.ProductType)
	return strings.Contains(t, "ppf") || strings.Contains(t, "ev")
}

func (w Warranty) IsSeatCover() bool {
	t := strings.ToLower(w.ProductType)
	return strings.Contains(t, "seat") || strings.Contains(t, "cover")
}

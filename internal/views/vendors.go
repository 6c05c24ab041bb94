package views

import (
	"strconv"

	"warranty-console/internal/entities"
	"warranty-console/pkg/listview"
)

var vendorStatusLabels = map[string]string{
	entities.VendorApproved:    "Approved",
	entities.VendorDisapproved: "Disapproved",
	entities.VendorPending:     "Pending",
}

var Vendors = View[entities.Vendor]{
	Name:        "vendors",
	ResourceKey: "vendors",
	Schema: listview.Schema[entities.Vendor]{
		Fields: map[string]listview.Field[entities.Vendor]{
			"store_name":       text(func(v entities.Vendor) string { return v.StoreName.String }),
			"contact_name":     text(func(v entities.Vendor) string { return listview.Coalesce(v.ContactName.String, v.VendorName.String) }),
			"store_email":      text(func(v entities.Vendor) string { return listview.Coalesce(v.StoreEmail.String, v.Email.String) }),
			"phone_number":     text(func(v entities.Vendor) string { return v.PhoneNumber.String }),
			"city":             text(func(v entities.Vendor) string { return v.City.String }),
			"state":            text(func(v entities.Vendor) string { return v.State.String }),
			"status":           text(func(v entities.Vendor) string { return v.VerificationStatus() }),
			"total_warranties": number(func(v entities.Vendor) string { return v.TotalWarranties.String() }),
			"manpower_count":   number(func(v entities.Vendor) string { return v.ManpowerCount.String() }),
			"created_at":       timestamp(func(v entities.Vendor) string { return v.CreatedAt }),
		},
		Search:      []string{"store_name", "contact_name", "store_email", "phone_number", "city"},
		DateField:   "created_at",
		DefaultSort: listview.SortSpec{Field: "created_at", Order: listview.Desc},
		ID:          func(v entities.Vendor) string { return v.ID.String() },
	},
	Export: func(opts ExportOptions) (listview.FieldMap[entities.Vendor], string) {
		return listview.FieldMap[entities.Vendor]{
			column("store_name", "Store Name", func(v entities.Vendor) string { return v.StoreName.String }),
			column("contact_name", "Contact Person", func(v entities.Vendor) string {
				return listview.Coalesce(v.ContactName.String, v.VendorName.String)
			}),
			column("email", "Email", func(v entities.Vendor) string { return listview.Coalesce(v.Email.String, v.StoreEmail.String) }),
			column("phone", "Phone", func(v entities.Vendor) string { return v.PhoneNumber.String }),
			column("manpower_count", "Manpower Count", func(v entities.Vendor) string { return count(v.ManpowerCount) }),
			column("city", "City", func(v entities.Vendor) string { return v.City.String }),
			column("state", "State", func(v entities.Vendor) string { return v.State.String }),
			column("address", "Address", func(v entities.Vendor) string { return na(v.FullAddress.String, v.Address.String) }),
			column("pincode", "Pincode", func(v entities.Vendor) string { return na(v.Pincode.String()) }),
			column("status", "Status", func(v entities.Vendor) string { return vendorStatusLabels[v.VerificationStatus()] }),
			column("approved_warranties", "Approved Warranties", func(v entities.Vendor) string { return count(v.ValidatedWarranties) }),
			column("pending_warranties", "Pending Warranties", func(v entities.Vendor) string { return count(v.PendingWarranties) }),
			column("disapproved_warranties", "Disapproved Warranties", func(v entities.Vendor) string { return count(v.RejectedWarranties) }),
			column("total_warranties", "Total Warranties", func(v entities.Vendor) string { return count(v.TotalWarranties) }),
			column("joined_date", "Joined Date", func(v entities.Vendor) string { return date(v.CreatedAt, opts.Location) }),
		}, "vendors"
	},
	Counts: map[string][]string{
		"status": {entities.VendorApproved, entities.VendorPending, entities.VendorDisapproved},
	},
}

func count(n entities.FlexNumber) string {
	return strconv.Itoa(n.Int())
}

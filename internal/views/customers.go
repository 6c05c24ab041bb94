package views

import (
	"warranty-console/internal/entities"
	"warranty-console/pkg/listview"
)

var Customers = View[entities.Customer]{
	Name:        "customers",
	ResourceKey: "customers",
	Schema: listview.Schema[entities.Customer]{
		Fields: map[string]listview.Field[entities.Customer]{
			"customer_name":    text(func(c entities.Customer) string { return c.CustomerName.String }),
			"customer_email":   text(func(c entities.Customer) string { return c.CustomerEmail }),
			"customer_phone":   text(func(c entities.Customer) string { return c.CustomerPhone.String }),
			"total_warranties": number(func(c entities.Customer) string { return c.TotalWarranties.String() }),
			"registered_at":    timestamp(func(c entities.Customer) string { return c.Since() }),
			"last_warranty":    timestamp(func(c entities.Customer) string { return c.LastWarrantyDate.String }),
		},
		Search:      []string{"customer_name", "customer_email", "customer_phone"},
		DateField:   "registered_at",
		DefaultSort: listview.SortSpec{Field: "registered_at", Order: listview.Desc},
		ID:          func(c entities.Customer) string { return c.CustomerEmail },
	},
	Export: func(opts ExportOptions) (listview.FieldMap[entities.Customer], string) {
		return listview.FieldMap[entities.Customer]{
			column("customer_name", "Customer Name", func(c entities.Customer) string { return c.CustomerName.String }),
			column("email", "Email", func(c entities.Customer) string { return c.CustomerEmail }),
			column("phone", "Phone", func(c entities.Customer) string { return c.CustomerPhone.String }),
			column("address", "Address", func(c entities.Customer) string { return na(c.CustomerAddress.String) }),
			column("approved_warranties", "Approved Warranties", func(c entities.Customer) string { return count(c.ValidatedWarranties) }),
			column("disapproved_warranties", "Disapproved Warranties", func(c entities.Customer) string { return count(c.RejectedWarranties) }),
			column("pending_warranties", "Pending Warranties", func(c entities.Customer) string { return count(c.PendingWarranties) }),
			column("total_warranties", "Total Warranties", func(c entities.Customer) string { return count(c.TotalWarranties) }),
			column("registered_date", "Registered Date", func(c entities.Customer) string { return date(c.Since(), opts.Location) }),
			column("first_warranty", "First Warranty", func(c entities.Customer) string { return date(c.FirstWarrantyDate.String, opts.Location) }),
			column("last_warranty", "Last Warranty", func(c entities.Customer) string { return date(c.LastWarrantyDate.String, opts.Location) }),
		}, "customers"
	},
}

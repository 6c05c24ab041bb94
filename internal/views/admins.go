package views

import (
	"warranty-console/internal/entities"
	"warranty-console/pkg/listview"
)

var Admins = View[entities.AdminUser]{
	Name:        "admins",
	ResourceKey: "admins",
	Schema: listview.Schema[entities.AdminUser]{
		Fields: map[string]listview.Field[entities.AdminUser]{
			"name":       text(func(a entities.AdminUser) string { return a.Name.String }),
			"email":      text(func(a entities.AdminUser) string { return a.Email }),
			"created_at": timestamp(func(a entities.AdminUser) string { return a.CreatedAt.String }),
		},
		Search:      []string{"name", "email"},
		DateField:   "created_at",
		DefaultSort: listview.SortSpec{Field: "created_at", Order: listview.Desc},
		ID:          func(a entities.AdminUser) string { return a.ID.String() },
	},
	Export: func(opts ExportOptions) (listview.FieldMap[entities.AdminUser], string) {
		return listview.FieldMap[entities.AdminUser]{
			column("name", "Name", func(a entities.AdminUser) string { return na(a.Name.String) }),
			column("email", "Email", func(a entities.AdminUser) string { return a.Email }),
			column("phone", "Phone", func(a entities.AdminUser) string { return na(a.PhoneNumber.String) }),
			column("created_at", "Added On", func(a entities.AdminUser) string { return date(a.CreatedAt.String, opts.Location) }),
		}, "admins"
	},
}

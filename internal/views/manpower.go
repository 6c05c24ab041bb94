package views

import (
	"strings"

	"warranty-console/internal/entities"
	"warranty-console/pkg/listview"
)

var Manpower = View[entities.Manpower]{
	Name:        "manpower",
	ResourceKey: "manpower",
	Schema: listview.Schema[entities.Manpower]{
		Fields: map[string]listview.Field[entities.Manpower]{
			"name":            text(func(m entities.Manpower) string { return m.Name.String }),
			"phone_number":    text(func(m entities.Manpower) string { return m.PhoneNumber.String }),
			"manpower_id":     text(func(m entities.Manpower) string { return m.ManpowerID.String }),
			"applicator_type": text(func(m entities.Manpower) string { return m.ApplicatorType.String }),
			"status":          text(func(m entities.Manpower) string { return m.ActivityStatus() }),
			"points":          number(func(m entities.Manpower) string { return m.Points.String() }),
			"created_at":      timestamp(func(m entities.Manpower) string { return m.CreatedAt }),
		},
		Search:      []string{"name", "phone_number", "manpower_id"},
		DateField:   "created_at",
		DefaultSort: listview.SortSpec{Field: "created_at", Order: listview.Desc},
		ID:          func(m entities.Manpower) string { return m.ID.String() },
	},
	Export: func(opts ExportOptions) (listview.FieldMap[entities.Manpower], string) {
		return listview.FieldMap[entities.Manpower]{
			column("name", "Name", func(m entities.Manpower) string { return m.Name.String }),
			column("phone", "Phone", func(m entities.Manpower) string { return m.PhoneNumber.String }),
			column("manpower_id", "Manpower ID", func(m entities.Manpower) string { return m.ManpowerID.String }),
			column("role", "Role", func(m entities.Manpower) string { return applicatorRole(m.ApplicatorType.String) }),
			column("status", "Status", func(m entities.Manpower) string { return listview.Capitalize(m.ActivityStatus()) }),
			column("approved_points", "Approved Points", func(m entities.Manpower) string { return count(m.Points) }),
			column("pending_points", "Pending Points", func(m entities.Manpower) string { return count(m.PendingPoints) }),
			column("disapproved_points", "Disapproved Points", func(m entities.Manpower) string { return count(m.RejectedPoints) }),
			column("total_applications", "Total Applications", func(m entities.Manpower) string { return count(m.TotalApplications) }),
			column("joined_date", "Joined Date", func(m entities.Manpower) string { return date(m.CreatedAt, opts.Location) }),
		}, "manpower"
	},
	Counts: map[string][]string{
		"status": {"active", "inactive"},
	},
}

// applicatorRole renders "seat_cover" as "SEAT COVER".
func applicatorRole(t string) string {
	if strings.TrimSpace(t) == "" {
		return listview.NA
	}
	return listview.Upper(strings.Replace(t, "_", " ", 1))
}

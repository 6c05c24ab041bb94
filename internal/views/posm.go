package views

import (
	"slices"

	"warranty-console/internal/entities"
	"warranty-console/pkg/listview"
)

var (
	posmFinished  = []string{"closed", "rejected", "delivered"}
	posmCompleted = []string{"delivered", "closed"}
)

var POSM = View[entities.POSMRequest]{
	Name:        "posm",
	ResourceKey: "data",
	Schema: listview.Schema[entities.POSMRequest]{
		Fields: map[string]listview.Field[entities.POSMRequest]{
			"ticket_id":    text(func(p entities.POSMRequest) string { return p.TicketID.String }),
			"store_name":   text(func(p entities.POSMRequest) string { return p.StoreName.String }),
			"contact_name": text(func(p entities.POSMRequest) string { return p.ContactName.String }),
			"requirement":  text(func(p entities.POSMRequest) string { return p.Requirement.String }),
			"status":       text(func(p entities.POSMRequest) string { return p.Status }),
			"created_at":   timestamp(func(p entities.POSMRequest) string { return p.CreatedAt }),
			"updated_at":   timestamp(func(p entities.POSMRequest) string { return p.UpdatedAt.String }),
		},
		Search: []string{"ticket_id", "store_name", "contact_name", "requirement"},
		Facets: map[string]listview.Facet[entities.POSMRequest]{
			"stage": func(p entities.POSMRequest, v string) bool {
				switch v {
				case "open":
					return p.Status == "open"
				case "active":
					return !slices.Contains(posmFinished, p.Status)
				case "completed":
					return slices.Contains(posmCompleted, p.Status)
				}
				return false
			},
		},
		DateField:   "created_at",
		DefaultSort: listview.SortSpec{Field: "created_at", Order: listview.Desc},
		ID:          func(p entities.POSMRequest) string { return p.ID.String() },
	},
	Export: func(opts ExportOptions) (listview.FieldMap[entities.POSMRequest], string) {
		return listview.FieldMap[entities.POSMRequest]{
			column("date", "Date", func(p entities.POSMRequest) string { return dateTime(p.CreatedAt, opts.Location) }),
			column("ticket_id", "Ticket ID", func(p entities.POSMRequest) string { return p.TicketID.String }),
			column("store_name", "Franchise", func(p entities.POSMRequest) string { return p.StoreName.String }),
			column("contact_name", "Contact Person", func(p entities.POSMRequest) string { return p.ContactName.String }),
			column("contact_email", "Contact Email", func(p entities.POSMRequest) string { return na(p.ContactEmail.String) }),
			column("requirement", "Requirement", func(p entities.POSMRequest) string { return p.Requirement.String }),
			column("status", "Status", func(p entities.POSMRequest) string { return listview.Capitalize(listview.Humanize(p.Status)) }),
			column("internal_notes", "Internal Notes", func(p entities.POSMRequest) string { return p.InternalNotes.String }),
			column("last_update", "Last Update", func(p entities.POSMRequest) string {
				return dateTime(listview.Coalesce(p.UpdatedAt.String, p.CreatedAt), opts.Location)
			}),
		}, "posm_requests"
	},
	Counts: map[string][]string{
		"status": entities.POSMStatuses,
		"stage":  {"open", "active", "completed"},
	},
}

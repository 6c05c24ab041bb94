package views

import (
	"warranty-console/internal/entities"
	"warranty-console/pkg/listview"
)

const (
	SourceFranchise = entities.GrievanceSourceFranchise
	SourceCustomer  = "customer"
)

var Grievances = View[entities.Grievance]{
	Name:        "grievances",
	ResourceKey: "data",
	Schema: listview.Schema[entities.Grievance]{
		Fields: map[string]listview.Field[entities.Grievance]{
			"ticket_id":      text(func(g entities.Grievance) string { return g.TicketID.String }),
			"customer_name":  text(func(g entities.Grievance) string { return g.CustomerName.String }),
			"franchise_name": text(func(g entities.Grievance) string { return g.FranchiseName.String }),
			"subject":        text(func(g entities.Grievance) string { return g.Subject.String }),
			"category":       text(func(g entities.Grievance) string { return g.Category }),
			"category_label": text(func(g entities.Grievance) string { return g.CategoryLabel() }),
			"status":         text(func(g entities.Grievance) string { return g.Status }),
			"assigned_to":    text(func(g entities.Grievance) string { return g.AssignedTo.String }),
			"created_at":     timestamp(func(g entities.Grievance) string { return g.CreatedAt }),
			"updated_at":     timestamp(func(g entities.Grievance) string { return grievanceLastUpdate(g) }),
		},
		Search: []string{"ticket_id", "customer_name", "franchise_name", "subject", "category_label"},
		Facets: map[string]listview.Facet[entities.Grievance]{
			"source": func(g entities.Grievance, v string) bool { return g.Source() == v },
		},
		DateField:   "created_at",
		DefaultSort: listview.SortSpec{Field: "created_at", Order: listview.Desc},
		ID:          func(g entities.Grievance) string { return g.ID.String() },
	},
	Export: func(opts ExportOptions) (listview.FieldMap[entities.Grievance], string) {
		loc := opts.Location
		raisedBy, party, stem := "Customer", "Franchise", "grievances"
		if opts.Variant == SourceFranchise {
			raisedBy, party = "Raised By", "Department"
			stem = "franchise_grievances"
		} else if opts.Variant == SourceCustomer {
			stem = "customer_grievances"
		}
		return listview.FieldMap[entities.Grievance]{
			column("date", "Date", func(g entities.Grievance) string { return dateTime(g.CreatedAt, loc) }),
			column("ticket_id", "Ticket ID", func(g entities.Grievance) string { return g.TicketID.String }),
			column("customer_name", raisedBy, func(g entities.Grievance) string { return g.CustomerName.String }),
			column("franchise_name", party, func(g entities.Grievance) string {
				if opts.Variant == SourceFranchise {
					return listview.Or(g.Department.String, "-")
				}
				return listview.Or(g.FranchiseName.String, "-")
			}),
			column("category", "Category", func(g entities.Grievance) string { return g.CategoryLabel() }),
			column("subject", "Subject", func(g entities.Grievance) string { return g.Subject.String }),
			column("status", "Status", func(g entities.Grievance) string { return listview.Humanize(g.Status) }),
			column("assigned_to", "Assigned To", func(g entities.Grievance) string { return listview.Or(g.AssignedTo.String, "Unassigned") }),
			column("last_update", "Last Update", func(g entities.Grievance) string { return dateTime(grievanceLastUpdate(g), loc) }),
		}, stem
	},
	VariantField: "source",
	Counts: map[string][]string{
		"status": entities.GrievanceStatuses,
		"source": {SourceCustomer, SourceFranchise},
	},
}

func grievanceLastUpdate(g entities.Grievance) string {
	return listview.Coalesce(g.UpdatedAt.String, g.StatusUpdatedAt.String, g.CreatedAt)
}

package views

import (
	"time"

	"warranty-console/internal/entities"
	"warranty-console/pkg/listview"
)

var ActivityLogs = View[entities.ActivityLog]{
	Name:        "activity-logs",
	ResourceKey: "logs",
	Schema: listview.Schema[entities.ActivityLog]{
		Fields: map[string]listview.Field[entities.ActivityLog]{
			"admin_name":  text(func(l entities.ActivityLog) string { return l.AdminName.String }),
			"admin_email": text(func(l entities.ActivityLog) string { return l.AdminEmail.String }),
			"action_type": text(func(l entities.ActivityLog) string { return l.ActionType }),
			"target_type": text(func(l entities.ActivityLog) string { return l.TargetType.String }),
			"target_name": text(func(l entities.ActivityLog) string { return l.TargetName.String }),
			"created_at":  timestamp(func(l entities.ActivityLog) string { return logTime(l) }),
		},
		Search:      []string{"admin_name", "admin_email", "action_type", "target_type", "target_name"},
		DateField:   "created_at",
		DefaultSort: listview.SortSpec{Field: "created_at", Order: listview.Desc},
		ID:          func(l entities.ActivityLog) string { return l.ID },
	},
	Export: func(opts ExportOptions) (listview.FieldMap[entities.ActivityLog], string) {
		return listview.FieldMap[entities.ActivityLog]{
			column("date", "Date", func(l entities.ActivityLog) string { return dateTime(logTime(l), opts.Location) }),
			column("admin_name", "Admin", func(l entities.ActivityLog) string { return na(l.AdminName.String) }),
			column("admin_email", "Admin Email", func(l entities.ActivityLog) string { return na(l.AdminEmail.String) }),
			column("action_type", "Action", func(l entities.ActivityLog) string { return listview.Humanize(l.ActionType) }),
			column("target_type", "Target Type", func(l entities.ActivityLog) string { return na(l.TargetType.String) }),
			column("target_name", "Target", func(l entities.ActivityLog) string { return na(l.TargetName.String, l.TargetID.String) }),
			column("ip_address", "IP Address", func(l entities.ActivityLog) string { return na(l.IPAddress.String) }),
		}, "activity_logs"
	},
	Counts: map[string][]string{
		"action_type": {
			entities.ActionWarrantyApproved, entities.ActionWarrantyRejected, entities.ActionWarrantyReset,
			entities.ActionVendorApproved, entities.ActionVendorRejected, entities.ActionVendorDeleted,
			entities.ActionCustomerDeleted, entities.ActionGrievanceUpdated, entities.ActionPOSMStatus,
			entities.ActionDataExported,
		},
	},
}

func logTime(l entities.ActivityLog) string {
	if l.CreatedAt.IsZero() {
		return ""
	}
	return l.CreatedAt.UTC().Format(time.RFC3339)
}

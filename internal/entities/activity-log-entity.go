package entities

import (
	"encoding/json"
	"time"

	"github.com/aarondl/null/v8"
)

const (
	ActionWarrantyApproved = "WARRANTY_APPROVED"
	ActionWarrantyRejected = "WARRANTY_REJECTED"
	ActionWarrantyReset    = "WARRANTY_STATUS_RESET"
	ActionVendorApproved   = "VENDOR_APPROVED"
	ActionVendorRejected   = "VENDOR_REJECTED"
	ActionVendorDeleted    = "VENDOR_DELETED"
	ActionCustomerDeleted  = "CUSTOMER_DELETED"
	ActionGrievanceUpdated = "GRIEVANCE_UPDATED"
	ActionPOSMStatus       = "UPDATE_POSM_STATUS"
	ActionDataExported     = "DATA_EXPORTED"
)

// ActivityLog is an audit row owned by the console.
type ActivityLog struct {
	ID         string          `json:"id" db:"id"`
	AdminID    string          `json:"admin_id" db:"admin_id"`
	AdminName  null.String     `json:"admin_name" db:"admin_name"`
	AdminEmail null.String     `json:"admin_email" db:"admin_email"`
	ActionType string          `json:"action_type" db:"action_type"`
	TargetType null.String     `json:"target_type" db:"target_type"`
	TargetID   null.String     `json:"target_id" db:"target_id"`
	TargetName null.String     `json:"target_name" db:"target_name"`
	Details    json.RawMessage `json:"details,omitempty" db:"details"`
	IPAddress  null.String     `json:"ip_address" db:"ip_address"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

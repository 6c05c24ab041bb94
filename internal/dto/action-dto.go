package dto

// UpdateWarrantyStatusDTO approves or rejects a warranty registration.
type UpdateWarrantyStatusDTO struct {
	Status          string `json:"status" validate:"required,warranty_status"`
	RejectionReason string `json:"rejectionReason" validate:"rejection_reason_if_rejected,max=1000"`
}

// VendorVerificationDTO approves (is_verified=true) or disapproves a franchise.
type VendorVerificationDTO struct {
	IsVerified      *bool  `json:"is_verified" validate:"required"`
	RejectionReason string `json:"rejection_reason" validate:"rejection_reason_if_unverified,max=1000"`
}

type UpdateGrievanceDTO struct {
	Status       string `json:"status" validate:"required,grievance_status"`
	AdminRemarks string `json:"admin_remarks" validate:"max=2000"`
	AdminNotes   string `json:"admin_notes" validate:"max=2000"`
}

type UpdatePOSMStatusDTO struct {
	Status        string `json:"status" validate:"required,posm_status"`
	InternalNotes string `json:"internalNotes" validate:"max=2000"`
}

type DeleteCustomerDTO struct {
	Email string `param:"email" validate:"required,email"`
}

type IDParamDTO struct {
	ID string `param:"id" validate:"required,max=64"`
}

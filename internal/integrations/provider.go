package integrations

import (
	"context"

	"warranty-console/internal/dto"
	"warranty-console/internal/entities"
)

// WarrantyAPI is the warranty service the console sits in front of. Every
// call forwards the caller's bearer token.
type WarrantyAPI interface {
	Name() string

	ListWarranties(ctx context.Context, token string) ([]entities.Warranty, error)
	ListVendors(ctx context.Context, token string) ([]entities.Vendor, error)
	ListCustomers(ctx context.Context, token string) ([]entities.Customer, error)
	ListAdmins(ctx context.Context, token string) ([]entities.AdminUser, error)
	ListGrievances(ctx context.Context, token string) ([]entities.Grievance, error)
	ListPOSMRequests(ctx context.Context, token string) ([]entities.POSMRequest, error)
	ListManpower(ctx context.Context, token string) ([]entities.Manpower, error)

	UpdateWarrantyStatus(ctx context.Context, token, key string, req dto.UpdateWarrantyStatusDTO) error
	SetVendorVerification(ctx context.Context, token, id string, req dto.VendorVerificationDTO) error
	DeleteVendor(ctx context.Context, token, id string) error
	DeleteCustomer(ctx context.Context, token, email string) error
	UpdateGrievance(ctx context.Context, token, id string, req dto.UpdateGrievanceDTO) error
	UpdatePOSMStatus(ctx context.Context, token, id string, req dto.UpdatePOSMStatusDTO) error
}

package mock

import (
	"context"
	"slices"
	"sync"

	"warranty-console/internal/dto"
	"warranty-console/internal/entities"
	"warranty-console/internal/integrations"
	apperrors "warranty-console/pkg/errors"
)

// MockProvider is an in-memory WarrantyAPI. Mutations are applied to the
// held records so that tests can observe them.
type MockProvider struct {
	mu sync.Mutex

	ShouldFail bool
	Calls      map[string]int

	Warranties []entities.Warranty
	Vendors    []entities.Vendor
	Customers  []entities.Customer
	Admins     []entities.AdminUser
	Grievances []entities.Grievance
	POSM       []entities.POSMRequest
	Manpower   []entities.Manpower
}

var _ integrations.WarrantyAPI = (*MockProvider)(nil)

func NewMockProvider() *MockProvider {
	return &MockProvider{Calls: make(map[string]int)}
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) enter(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[op]++
	if m.ShouldFail {
		return apperrors.ErrUpstreamUnavailable
	}
	return nil
}

// CallCount returns how many times op was invoked.
func (m *MockProvider) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[op]
}

// SetFailing toggles the failure mode under the lock.
func (m *MockProvider) SetFailing(fail bool) {
	m.mu.Lock()
	m.ShouldFail = fail
	m.mu.Unlock()
}

func snapshot[T any](m *MockProvider, op string, list func() []T) ([]T, error) {
	if err := m.enter(op); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(list()), nil
}

func (m *MockProvider) ListWarranties(ctx context.Context, token string) ([]entities.Warranty, error) {
	return snapshot(m, "ListWarranties", func() []entities.Warranty { return m.Warranties })
}

func (m *MockProvider) ListVendors(ctx context.Context, token string) ([]entities.Vendor, error) {
	return snapshot(m, "ListVendors", func() []entities.Vendor { return m.Vendors })
}

func (m *MockProvider) ListCustomers(ctx context.Context, token string) ([]entities.Customer, error) {
	return snapshot(m, "ListCustomers", func() []entities.Customer { return m.Customers })
}

func (m *MockProvider) ListAdmins(ctx context.Context, token string) ([]entities.AdminUser, error) {
	return snapshot(m, "ListAdmins", func() []entities.AdminUser { return m.Admins })
}

func (m *MockProvider) ListGrievances(ctx context.Context, token string) ([]entities.Grievance, error) {
	return snapshot(m, "ListGrievances", func() []entities.Grievance { return m.Grievances })
}

func (m *MockProvider) ListPOSMRequests(ctx context.Context, token string) ([]entities.POSMRequest, error) {
	return snapshot(m, "ListPOSMRequests", func() []entities.POSMRequest { return m.POSM })
}

func (m *MockProvider) ListManpower(ctx context.Context, token string) ([]entities.Manpower, error) {
	return snapshot(m, "ListManpower", func() []entities.Manpower { return m.Manpower })
}

func (m *MockProvider) UpdateWarrantyStatus(ctx context.Context, token, key string, req dto.UpdateWarrantyStatusDTO) error {
	if err := m.enter("UpdateWarrantyStatus"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Warranties {
		if m.Warranties[i].Key() == key {
			m.Warranties[i].Status = req.Status
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *MockProvider) SetVendorVerification(ctx context.Context, token, id string, req dto.VendorVerificationDTO) error {
	if err := m.enter("SetVendorVerification"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Vendors {
		if m.Vendors[i].ID.String() == id {
			m.Vendors[i].IsVerified = entities.FlexBool(req.IsVerified != nil && *req.IsVerified)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *MockProvider) DeleteVendor(ctx context.Context, token, id string) error {
	if err := m.enter("DeleteVendor"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.Vendors)
	m.Vendors = slices.DeleteFunc(m.Vendors, func(v entities.Vendor) bool { return v.ID.String() == id })
	if len(m.Vendors) == n {
		return apperrors.ErrNotFound
	}
	return nil
}

func (m *MockProvider) DeleteCustomer(ctx context.Context, token, email string) error {
	if err := m.enter("DeleteCustomer"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.Customers)
	m.Customers = slices.DeleteFunc(m.Customers, func(c entities.Customer) bool { return c.CustomerEmail == email })
	if len(m.Customers) == n {
		return apperrors.ErrNotFound
	}
	return nil
}

func (m *MockProvider) UpdateGrievance(ctx context.Context, token, id string, req dto.UpdateGrievanceDTO) error {
	if err := m.enter("UpdateGrievance"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Grievances {
		if m.Grievances[i].ID.String() == id {
			m.Grievances[i].Status = req.Status
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *MockProvider) UpdatePOSMStatus(ctx context.Context, token, id string, req dto.UpdatePOSMStatusDTO) error {
	if err := m.enter("UpdatePOSMStatus"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.POSM {
		if m.POSM[i].ID.String() == id {
			m.POSM[i].Status = req.Status
			return nil
		}
	}
	return apperrors.ErrNotFound
}

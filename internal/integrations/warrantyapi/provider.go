package warrantyapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"warranty-console/internal/dto"
	"warranty-console/internal/entities"
	"warranty-console/internal/integrations"
	"warranty-console/pkg/config"
	apperrors "warranty-console/pkg/errors"
)

// Provider talks to the warranty REST API. List endpoints answer with
// {success: true, <key>: [...]}; anything else is a failed fetch.
type Provider struct {
	httpClient *http.Client
	baseURL    string
	maxRetries uint64
	retryDelay time.Duration
	logger     *zap.Logger
}

func New(cfg config.UpstreamConfig, logger *zap.Logger) integrations.WarrantyAPI {
	return &Provider{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     logger.Named("warranty_api"),
	}
}

func (p *Provider) Name() string {
	return "warranty-api"
}

// listEntity fetches one list endpoint and decodes the array under key.
func listEntity[T any](p *Provider, ctx context.Context, token, endpoint, key string) ([]T, error) {
	raw, err := p.fetchData(ctx, token, endpoint)
	if err != nil {
		return nil, err
	}

	items, err := decodeList[T](raw, key)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", apperrors.ErrUpstreamUnavailable, endpoint, err)
	}
	p.logger.Debug("list fetched",
		zap.String("endpoint", endpoint),
		zap.Int("count", len(items)),
	)
	return items, nil
}

func (p *Provider) ListWarranties(ctx context.Context, token string) ([]entities.Warranty, error) {
	return listEntity[entities.Warranty](p, ctx, token, "/admin/warranties", "warranties")
}

func (p *Provider) ListVendors(ctx context.Context, token string) ([]entities.Vendor, error) {
	return listEntity[entities.Vendor](p, ctx, token, "/admin/vendors", "vendors")
}

func (p *Provider) ListCustomers(ctx context.Context, token string) ([]entities.Customer, error) {
	return listEntity[entities.Customer](p, ctx, token, "/admin/customers", "customers")
}

func (p *Provider) ListAdmins(ctx context.Context, token string) ([]entities.AdminUser, error) {
	return listEntity[entities.AdminUser](p, ctx, token, "/admin/admins", "admins")
}

func (p *Provider) ListGrievances(ctx context.Context, token string) ([]entities.Grievance, error) {
	return listEntity[entities.Grievance](p, ctx, token, "/grievance/admin", "data")
}

func (p *Provider) ListPOSMRequests(ctx context.Context, token string) ([]entities.POSMRequest, error) {
	return listEntity[entities.POSMRequest](p, ctx, token, "/posm/admin/all", "data")
}

// ListManpower merges the active and the inactive roster, which the API
// serves separately.
func (p *Provider) ListManpower(ctx context.Context, token string) ([]entities.Manpower, error) {
	var active, inactive []entities.Manpower
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		active, err = listEntity[entities.Manpower](p, gctx, token, "/vendor/manpower?active=true", "manpower")
		return err
	})
	g.Go(func() error {
		var err error
		inactive, err = listEntity[entities.Manpower](p, gctx, token, "/vendor/manpower?active=false", "manpower")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return append(active, inactive...), nil
}

func (p *Provider) UpdateWarrantyStatus(ctx context.Context, token, key string, req dto.UpdateWarrantyStatusDTO) error {
	return p.send(ctx, token, http.MethodPut, "/admin/warranties/"+url.PathEscape(key)+"/status", req)
}

func (p *Provider) SetVendorVerification(ctx context.Context, token, id string, req dto.VendorVerificationDTO) error {
	return p.send(ctx, token, http.MethodPut, "/admin/vendors/"+url.PathEscape(id)+"/verification", req)
}

func (p *Provider) DeleteVendor(ctx context.Context, token, id string) error {
	return p.send(ctx, token, http.MethodDelete, "/admin/vendors/"+url.PathEscape(id), nil)
}

func (p *Provider) DeleteCustomer(ctx context.Context, token, email string) error {
	return p.send(ctx, token, http.MethodDelete, "/admin/customers/"+url.PathEscape(email), nil)
}

func (p *Provider) UpdateGrievance(ctx context.Context, token, id string, req dto.UpdateGrievanceDTO) error {
	return p.send(ctx, token, http.MethodPut, "/grievance/"+url.PathEscape(id)+"/admin-update", req)
}

func (p *Provider) UpdatePOSMStatus(ctx context.Context, token, id string, req dto.UpdatePOSMStatusDTO) error {
	return p.send(ctx, token, http.MethodPut, "/posm/"+url.PathEscape(id)+"/status", req)
}

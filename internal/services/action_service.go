package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"warranty-console/internal/dto"
	"warranty-console/internal/entities"
	"warranty-console/internal/events"
	"warranty-console/internal/integrations"
	"warranty-console/internal/repositories"
	"warranty-console/pkg/eventbus"
	"warranty-console/pkg/utils"
)

type ActionServiceInterface interface {
	UpdateWarrantyStatus(ctx context.Context, key string, req dto.UpdateWarrantyStatusDTO) error
	SetVendorVerification(ctx context.Context, id string, req dto.VendorVerificationDTO) error
	DeleteVendor(ctx context.Context, id string) error
	DeleteCustomer(ctx context.Context, email string) error
	UpdateGrievance(ctx context.Context, id string, req dto.UpdateGrievanceDTO) error
	UpdatePOSMStatus(ctx context.Context, id string, req dto.UpdatePOSMStatusDTO) error
}

// Stores groups the record stores that admin actions patch.
type Stores struct {
	Warranties *repositories.RecordStore[entities.Warranty]
	Vendors    *repositories.RecordStore[entities.Vendor]
	Customers  *repositories.RecordStore[entities.Customer]
	Grievances *repositories.RecordStore[entities.Grievance]
	POSM       *repositories.RecordStore[entities.POSMRequest]
}

// ActionService forwards admin actions to the warranty API. On success the
// caller's snapshot is patched in place and the action is logged.
type ActionService struct {
	api    integrations.WarrantyAPI
	stores Stores
	bus    *eventbus.Bus
	now    func() time.Time
	logger *zap.Logger
}

func NewActionService(api integrations.WarrantyAPI, stores Stores, bus *eventbus.Bus, logger *zap.Logger) ActionServiceInterface {
	return &ActionService{
		api:    api,
		stores: stores,
		bus:    bus,
		now:    time.Now,
		logger: logger.Named("actions"),
	}
}

type actionTarget struct {
	kind    string
	id      string
	name    string
	details map[string]interface{}
}

// perform runs call with the caller's token and publishes the action once
// it succeeded. The patch callback runs only after a successful call.
func (s *ActionService) perform(ctx context.Context, action string, target actionTarget, call func(token string) error, patch func(owner string) string) error {
	principal, err := utils.GetPrincipalFromContext(ctx)
	if err != nil {
		return err
	}

	if err := call(utils.GetTokenFromContext(ctx)); err != nil {
		s.logger.Warn("action rejected",
			zap.String("action", action),
			zap.String("target_id", target.id),
			zap.Error(err),
		)
		return err
	}

	if name := patch(principal.ID); name != "" {
		target.name = name
	}

	s.logger.Info("action done",
		zap.String("action", action),
		zap.String("target_id", target.id),
		zap.String("admin_id", principal.ID),
	)
	s.bus.Publish(ctx, events.ConsoleActionEvent{
		Actor:      *principal,
		Action:     action,
		TargetType: target.kind,
		TargetID:   target.id,
		TargetName: target.name,
		Details:    target.details,
	})
	return nil
}

// patchOrInvalidate patches the snapshot, or drops it when the record is
// not in it so that the next read refetches.
func patchOrInvalidate[T any](ctx context.Context, store *repositories.RecordStore[T], owner, id string, fn func(*T)) {
	if store == nil {
		return
	}
	if !store.Patch(ctx, owner, id, fn) {
		store.Invalidate(ctx, owner)
	}
}

func removeOrInvalidate[T any](ctx context.Context, store *repositories.RecordStore[T], owner, id string) {
	if store == nil {
		return
	}
	if !store.Remove(ctx, owner, id) {
		store.Invalidate(ctx, owner)
	}
}

func (s *ActionService) timestamp() null.String {
	return null.StringFrom(s.now().UTC().Format(time.RFC3339))
}

func (s *ActionService) UpdateWarrantyStatus(ctx context.Context, key string, req dto.UpdateWarrantyStatusDTO) error {
	action := entities.ActionWarrantyReset
	switch req.Status {
	case entities.WarrantyValidated:
		action = entities.ActionWarrantyApproved
	case entities.WarrantyRejected:
		action = entities.ActionWarrantyRejected
	}

	target := actionTarget{kind: "warranty", id: key, details: map[string]interface{}{"status": req.Status}}
	if req.RejectionReason != "" {
		target.details["rejection_reason"] = req.RejectionReason
	}

	return s.perform(ctx, action, target,
		func(token string) error { return s.api.UpdateWarrantyStatus(ctx, token, key, req) },
		func(owner string) string {
			var name string
			patchOrInvalidate(ctx, s.stores.Warranties, owner, key, func(w *entities.Warranty) {
				w.Status = req.Status
				w.RejectionReason = null.NewString(req.RejectionReason, req.Status == entities.WarrantyRejected)
				w.UpdatedAt = s.timestamp()
				name = w.CustomerName.String
			})
			return name
		})
}

func (s *ActionService) SetVendorVerification(ctx context.Context, id string, req dto.VendorVerificationDTO) error {
	verified := req.IsVerified != nil && *req.IsVerified
	action := entities.ActionVendorRejected
	if verified {
		action = entities.ActionVendorApproved
	}

	target := actionTarget{kind: "vendor", id: id, details: map[string]interface{}{"is_verified": verified}}
	if !verified {
		target.details["rejection_reason"] = req.RejectionReason
	}

	return s.perform(ctx, action, target,
		func(token string) error { return s.api.SetVendorVerification(ctx, token, id, req) },
		func(owner string) string {
			var name string
			patchOrInvalidate(ctx, s.stores.Vendors, owner, id, func(v *entities.Vendor) {
				v.IsVerified = entities.FlexBool(verified)
				v.VerifiedAt = s.timestamp()
				v.RejectionReason = null.NewString(req.RejectionReason, !verified)
				name = v.StoreName.String
			})
			return name
		})
}

func (s *ActionService) DeleteVendor(ctx context.Context, id string) error {
	return s.perform(ctx, entities.ActionVendorDeleted, actionTarget{kind: "vendor", id: id},
		func(token string) error { return s.api.DeleteVendor(ctx, token, id) },
		func(owner string) string {
			removeOrInvalidate(ctx, s.stores.Vendors, owner, id)
			return ""
		})
}

// DeleteCustomer also drops the caller's warranty snapshot, since the
// customer's warranties go with them.
func (s *ActionService) DeleteCustomer(ctx context.Context, email string) error {
	return s.perform(ctx, entities.ActionCustomerDeleted, actionTarget{kind: "customer", id: email, name: email},
		func(token string) error { return s.api.DeleteCustomer(ctx, token, email) },
		func(owner string) string {
			removeOrInvalidate(ctx, s.stores.Customers, owner, email)
			if s.stores.Warranties != nil {
				s.stores.Warranties.Invalidate(ctx, owner)
			}
			return ""
		})
}

func (s *ActionService) UpdateGrievance(ctx context.Context, id string, req dto.UpdateGrievanceDTO) error {
	target := actionTarget{kind: "grievance", id: id, details: map[string]interface{}{"status": req.Status}}
	if req.AdminRemarks != "" {
		target.details["admin_remarks"] = req.AdminRemarks
	}

	return s.perform(ctx, entities.ActionGrievanceUpdated, target,
		func(token string) error { return s.api.UpdateGrievance(ctx, token, id, req) },
		func(owner string) string {
			var name string
			patchOrInvalidate(ctx, s.stores.Grievances, owner, id, func(g *entities.Grievance) {
				now := s.timestamp()
				if g.Status != req.Status {
					g.StatusUpdatedAt = now
				}
				g.Status = req.Status
				if req.AdminRemarks != "" {
					g.AdminRemarks = null.StringFrom(req.AdminRemarks)
				}
				if req.AdminNotes != "" {
					g.AdminNotes = null.StringFrom(req.AdminNotes)
				}
				g.UpdatedAt = now
				name = g.TicketID.String
			})
			return name
		})
}

func (s *ActionService) UpdatePOSMStatus(ctx context.Context, id string, req dto.UpdatePOSMStatusDTO) error {
	target := actionTarget{kind: "posm", id: id, details: map[string]interface{}{"status": req.Status}}

	return s.perform(ctx, entities.ActionPOSMStatus, target,
		func(token string) error { return s.api.UpdatePOSMStatus(ctx, token, id, req) },
		func(owner string) string {
			var name string
			patchOrInvalidate(ctx, s.stores.POSM, owner, id, func(p *entities.POSMRequest) {
				p.Status = req.Status
				if req.InternalNotes != "" {
					p.InternalNotes = null.StringFrom(req.InternalNotes)
				}
				p.UpdatedAt = s.timestamp()
				name = p.TicketID.String
			})
			return name
		})
}

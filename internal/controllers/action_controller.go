package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"warranty-console/internal/dto"
	"warranty-console/internal/services"
	"warranty-console/pkg/api"
	apperrors "warranty-console/pkg/errors"
	"warranty-console/pkg/utils"
)

type ActionController struct {
	service services.ActionServiceInterface
	logger  *zap.Logger
}

func NewActionController(service services.ActionServiceInterface, logger *zap.Logger) *ActionController {
	return &ActionController{service: service, logger: logger.Named("actions")}
}

// bind decodes and validates the body. Nothing reaches the warranty API
// unless this passes.
func bind[D any](ctx echo.Context) (D, error) {
	var req D
	if err := ctx.Bind(&req); err != nil {
		return req, apperrors.NewBadRequestError("Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

func pathID(ctx echo.Context) (string, error) {
	params := dto.IDParamDTO{ID: ctx.Param("id")}
	if err := ctx.Validate(&params); err != nil {
		return "", apperrors.NewBadRequestError("Invalid id")
	}
	return params.ID, nil
}

func (c *ActionController) UpdateWarrantyStatus(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	req, err := bind[dto.UpdateWarrantyStatusDTO](ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.service.UpdateWarrantyStatus(ctx.Request().Context(), id, req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Warranty status updated", req)
}

func (c *ActionController) SetVendorVerification(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	req, err := bind[dto.VendorVerificationDTO](ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.service.SetVendorVerification(ctx.Request().Context(), id, req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	message := "Franchise disapproved"
	if *req.IsVerified {
		message = "Franchise approved"
	}
	return api.SuccessOne(ctx, http.StatusOK, message, req)
}

func (c *ActionController) DeleteVendor(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.service.DeleteVendor(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne[any](ctx, http.StatusOK, "Franchise deleted", nil)
}

func (c *ActionController) DeleteCustomer(ctx echo.Context) error {
	params := dto.DeleteCustomerDTO{Email: ctx.Param("email")}
	if err := ctx.Validate(&params); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.service.DeleteCustomer(ctx.Request().Context(), params.Email); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne[any](ctx, http.StatusOK, "Customer deleted", nil)
}

func (c *ActionController) UpdateGrievance(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	req, err := bind[dto.UpdateGrievanceDTO](ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.service.UpdateGrievance(ctx.Request().Context(), id, req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Grievance updated", req)
}

func (c *ActionController) UpdatePOSMStatus(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	req, err := bind[dto.UpdatePOSMStatusDTO](ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.service.UpdatePOSMStatus(ctx.Request().Context(), id, req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "POSM request updated", req)
}

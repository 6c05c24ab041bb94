package customvalidator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"warranty-console/internal/entities"
)

// RegisterCustomValidations registers every console-specific rule on v.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("warranty_status", oneOfSet(entities.WarrantyActionStatuses)); err != nil {
		return err
	}
	if err := v.RegisterValidation("grievance_status", oneOfSet(entities.GrievanceStatuses)); err != nil {
		return err
	}
	if err := v.RegisterValidation("posm_status", oneOfSet(entities.POSMStatuses)); err != nil {
		return err
	}
	if err := v.RegisterValidation("rejection_reason_if_unverified", requireReasonWhenUnverified, true); err != nil {
		return err
	}
	if err := v.RegisterValidation("rejection_reason_if_rejected", requireReasonWhenRejected, true); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}
	return nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func oneOfSet(allowed []string) validator.Func {
	set := make(map[string]bool, len(allowed))
	for _, s := range allowed {
		set[s] = true
	}
	return func(fl validator.FieldLevel) bool {
		return set[fl.Field().String()]
	}
}

// requireReasonWhenUnverified fails a blank reason when the sibling
// IsVerified pointer is set to false.
func requireReasonWhenUnverified(fl validator.FieldLevel) bool {
	verified := fl.Parent().FieldByName("IsVerified")
	if !verified.IsValid() || verified.Kind() != reflect.Ptr || verified.IsNil() {
		return true
	}
	if verified.Elem().Bool() {
		return true
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

// requireReasonWhenRejected fails a blank reason when the sibling Status is
// the rejected warranty state.
func requireReasonWhenRejected(fl validator.FieldLevel) bool {
	status := fl.Parent().FieldByName("Status")
	if !status.IsValid() || status.Kind() != reflect.String || status.String() != entities.WarrantyRejected {
		return true
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

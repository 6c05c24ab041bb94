package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"warranty-console/internal/dto"
	"warranty-console/internal/entities"
	"warranty-console/internal/integrations/mock"
	"warranty-console/internal/repositories"
	"warranty-console/internal/services"
	"warranty-console/internal/views"
	"warranty-console/pkg/config"
	"warranty-console/pkg/customvalidator"
	"warranty-console/pkg/eventbus"
	"warranty-console/pkg/utils"
)

var storeCfg = config.StoreConfig{TTL: time.Hour, RefreshAfter: time.Minute}

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	v := validator.New()
	require.NoError(t, customvalidator.RegisterCustomValidations(v))
	e := echo.New()
	e.Validator = utils.NewValidator(v)
	return e
}

// request builds an authenticated echo context.
func request(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	principal := &dto.Principal{ID: "1", Email: "admin@x.io", Role: dto.RoleAdmin}
	req = req.WithContext(utils.WithPrincipal(req.Context(), principal, "tok"))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func grievanceFixture() *mock.MockProvider {
	api := mock.NewMockProvider()
	api.Grievances = []entities.Grievance{
		{ID: "1", TicketID: null.StringFrom("GRV-1"), CustomerName: null.StringFrom("John Doe"), Status: "submitted", Category: "billing_issue", CreatedAt: "2024-01-31T23:59:00Z"},
		{ID: "2", TicketID: null.StringFrom("GRV-2"), CustomerName: null.StringFrom("Priya"), Status: "resolved", Category: "other", CreatedAt: "2024-02-01T00:00:01Z"},
		{ID: "3", TicketID: null.StringFrom("GRV-3"), FranchiseName: null.StringFrom("Auto Hub"), Status: "submitted", Category: "store_issue", SourceType: null.StringFrom("franchise"), CreatedAt: "2024-01-15T08:00:00Z"},
	}
	return api
}

func newGrievanceController(api *mock.MockProvider) *ListController[entities.Grievance] {
	store := repositories.NewRecordStore[entities.Grievance]("grievances", api.ListGrievances, views.Grievances.Schema.ID, nil, storeCfg, zap.NewNop())
	svc := services.NewListService(views.Grievances, store, eventbus.New(zap.NewNop()), config.ExportConfig{MaxRows: 100, Timezone: "Asia/Kolkata"}, zap.NewNop())
	return NewListController(svc, time.UTC, zap.NewNop())
}

func TestListController_DateRangeAndEnvelope(t *testing.T) {
	e := newEcho(t)
	ctrl := newGrievanceController(grievanceFixture())

	c, rec := request(e, http.MethodGet, "/api/v1/grievances?date_from=2024-01-01&date_to=2024-01-31&sort=created_at&order=asc", "")
	require.NoError(t, ctrl.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "GRV-3", data[0].(map[string]interface{})["ticket_id"])
	assert.Equal(t, "GRV-1", data[1].(map[string]interface{})["ticket_id"])

	pagination := body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 2, pagination["totalCount"])
	assert.EqualValues(t, 1, pagination["currentPage"])
	assert.NotContains(t, body, "stale")
}

func TestListController_SearchAndFacet(t *testing.T) {
	e := newEcho(t)
	ctrl := newGrievanceController(grievanceFixture())

	c, rec := request(e, http.MethodGet, "/api/v1/grievances?search=JOHN", "")
	require.NoError(t, ctrl.List(c))
	assert.Len(t, decode(t, rec)["data"], 1)

	c, rec = request(e, http.MethodGet, "/api/v1/grievances?filter[source]=franchise", "")
	require.NoError(t, ctrl.List(c))
	assert.Len(t, decode(t, rec)["data"], 1)

	c, rec = request(e, http.MethodGet, "/api/v1/grievances?search=xyz", "")
	require.NoError(t, ctrl.List(c))
	assert.Len(t, decode(t, rec)["data"], 0)
}

func TestListController_BadDate(t *testing.T) {
	e := newEcho(t)
	ctrl := newGrievanceController(grievanceFixture())

	c, rec := request(e, http.MethodGet, "/api/v1/grievances?date_from=31-01-2024", "")
	require.NoError(t, ctrl.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])
}

func TestListController_DateRangeOverNonDateField(t *testing.T) {
	e := newEcho(t)
	api := grievanceFixture()
	ctrl := newGrievanceController(api)

	for _, field := range []string{"shoe_size", "status"} {
		c, rec := request(e, http.MethodGet, "/api/v1/grievances?date_field="+field+"&date_from=2024-01-01", "")
		require.NoError(t, ctrl.List(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, field)
		assert.Contains(t, decode(t, rec)["message"], "date_field")

		c, rec = request(e, http.MethodGet, "/api/v1/grievances/export?format=csv&date_field="+field+"&date_to=2024-01-31", "")
		require.NoError(t, ctrl.Export(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, field)
	}

	c, rec := request(e, http.MethodGet, "/api/v1/grievances?date_field=created_at&date_from=2024-01-01", "")
	require.NoError(t, ctrl.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListController_StaleFlag(t *testing.T) {
	e := newEcho(t)
	api := grievanceFixture()
	ctrl := newGrievanceController(api)

	c, _ := request(e, http.MethodGet, "/api/v1/grievances", "")
	require.NoError(t, ctrl.List(c))

	api.SetFailing(true)
	c, rec := request(e, http.MethodPost, "/api/v1/grievances/refresh", "")
	require.NoError(t, ctrl.Refresh(c))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["stale"])
	assert.NotEmpty(t, body["warning"])
}

func TestListController_UpstreamDownWithoutSnapshot(t *testing.T) {
	e := newEcho(t)
	api := grievanceFixture()
	api.ShouldFail = true
	ctrl := newGrievanceController(api)

	c, rec := request(e, http.MethodGet, "/api/v1/grievances", "")
	require.NoError(t, ctrl.List(c))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestListController_Counts(t *testing.T) {
	e := newEcho(t)
	ctrl := newGrievanceController(grievanceFixture())

	c, rec := request(e, http.MethodGet, "/api/v1/grievances/counts?facet=source", "")
	require.NoError(t, ctrl.Counts(c))
	counts := decode(t, rec)["counts"].(map[string]interface{})
	assert.EqualValues(t, 2, counts["customer"])
	assert.EqualValues(t, 1, counts["franchise"])
	assert.EqualValues(t, 3, counts["all"])
}

func TestListController_ExportCSV(t *testing.T) {
	e := newEcho(t)
	ctrl := newGrievanceController(grievanceFixture())

	q := url.Values{}
	q.Set("type", "customer")
	q.Set("fields", "ticket_id,status")
	c, rec := request(e, http.MethodGet, "/api/v1/grievances/export?"+q.Encode(), "")
	require.NoError(t, ctrl.Export(c))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "customer_grievances_")
	assert.Equal(t, "2", rec.Header().Get("X-Export-Rows"))
	assert.Equal(t, "\"Ticket ID\",\"Status\"\n\"GRV-2\",\"resolved\"\n\"GRV-1\",\"submitted\"", rec.Body.String())
}

func TestListController_ExportNothing(t *testing.T) {
	e := newEcho(t)
	ctrl := newGrievanceController(grievanceFixture())

	c, rec := request(e, http.MethodGet, "/api/v1/grievances/export?search=nobody", "")
	require.NoError(t, ctrl.Export(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "No records to export", decode(t, rec)["message"])
}

func TestListController_ExportBadFormat(t *testing.T) {
	e := newEcho(t)
	ctrl := newGrievanceController(grievanceFixture())

	c, rec := request(e, http.MethodGet, "/api/v1/grievances/export?format=pdf", "")
	require.NoError(t, ctrl.Export(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func newActionController(api *mock.MockProvider) *ActionController {
	stores := services.Stores{
		Warranties: repositories.NewRecordStore[entities.Warranty]("warranties", api.ListWarranties, views.Warranties.Schema.ID, nil, storeCfg, zap.NewNop()),
		Vendors:    repositories.NewRecordStore[entities.Vendor]("vendors", api.ListVendors, views.Vendors.Schema.ID, nil, storeCfg, zap.NewNop()),
	}
	return NewActionController(services.NewActionService(api, stores, eventbus.New(zap.NewNop()), zap.NewNop()), zap.NewNop())
}

func TestActionController_RejectWithoutReasonNeverReachesUpstream(t *testing.T) {
	e := newEcho(t)
	api := mock.NewMockProvider()
	api.Warranties = []entities.Warranty{{ID: "1", UID: null.StringFrom("W-1"), Status: "pending"}}
	ctrl := newActionController(api)

	c, rec := request(e, http.MethodPut, "/api/v1/warranties/W-1/status", `{"status":"rejected"}`)
	c.SetParamNames("id")
	c.SetParamValues("W-1")
	require.NoError(t, ctrl.UpdateWarrantyStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, api.CallCount("UpdateWarrantyStatus"))

	c, rec = request(e, http.MethodPut, "/api/v1/warranties/W-1/status", `{"status":"rejected","rejectionReason":"   "}`)
	c.SetParamNames("id")
	c.SetParamValues("W-1")
	require.NoError(t, ctrl.UpdateWarrantyStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, api.CallCount("UpdateWarrantyStatus"))

	c, rec = request(e, http.MethodPut, "/api/v1/warranties/W-1/status", `{"status":"shipped"}`)
	c.SetParamNames("id")
	c.SetParamValues("W-1")
	require.NoError(t, ctrl.UpdateWarrantyStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, api.CallCount("UpdateWarrantyStatus"))
}

func TestActionController_ApproveWarranty(t *testing.T) {
	e := newEcho(t)
	api := mock.NewMockProvider()
	api.Warranties = []entities.Warranty{{ID: "1", UID: null.StringFrom("W-1"), Status: "pending"}}
	ctrl := newActionController(api)

	c, rec := request(e, http.MethodPut, "/api/v1/warranties/W-1/status", `{"status":"validated"}`)
	c.SetParamNames("id")
	c.SetParamValues("W-1")
	require.NoError(t, ctrl.UpdateWarrantyStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, api.CallCount("UpdateWarrantyStatus"))
	assert.Equal(t, "validated", api.Warranties[0].Status)
}

func TestActionController_UnknownWarranty(t *testing.T) {
	e := newEcho(t)
	ctrl := newActionController(mock.NewMockProvider())

	c, rec := request(e, http.MethodPut, "/api/v1/warranties/nope/status", `{"status":"validated"}`)
	c.SetParamNames("id")
	c.SetParamValues("nope")
	require.NoError(t, ctrl.UpdateWarrantyStatus(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestActionController_VendorDisapprovalNeedsReason(t *testing.T) {
	e := newEcho(t)
	api := mock.NewMockProvider()
	api.Vendors = []entities.Vendor{{ID: "4"}}
	ctrl := newActionController(api)

	c, rec := request(e, http.MethodPut, "/api/v1/vendors/4/verification", `{"is_verified":false}`)
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, ctrl.SetVendorVerification(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = request(e, http.MethodPut, "/api/v1/vendors/4/verification", `{"is_verified":false,"rejection_reason":"incomplete KYC"}`)
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, ctrl.SetVendorVerification(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Franchise disapproved", decode(t, rec)["message"])
}

func TestActionController_DeleteCustomerValidatesEmail(t *testing.T) {
	e := newEcho(t)
	api := mock.NewMockProvider()
	ctrl := newActionController(api)

	c, rec := request(e, http.MethodDelete, "/api/v1/customers/not-an-email", "")
	c.SetParamNames("email")
	c.SetParamValues("not-an-email")
	require.NoError(t, ctrl.DeleteCustomer(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, api.CallCount("DeleteCustomer"))
}

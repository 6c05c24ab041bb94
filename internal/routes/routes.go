package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"warranty-console/internal/controllers"
	"warranty-console/internal/dto"
	"warranty-console/internal/entities"
	"warranty-console/internal/integrations"
	"warranty-console/internal/repositories"
	"warranty-console/internal/services"
	"warranty-console/internal/views"
	"warranty-console/pkg/config"
	"warranty-console/pkg/eventbus"
	"warranty-console/pkg/middleware"
	"warranty-console/pkg/service"
)

// Deps are the long-lived components the router wires into views.
type Deps struct {
	API    integrations.WarrantyAPI
	Cache  repositories.CacheRepositoryInterface
	Logs   repositories.ActivityLogRepositoryInterface
	JWT    service.JWTService
	Bus    *eventbus.Bus
	Config *config.Config
	Logger *zap.Logger
}

func InitRouter(e *echo.Echo, deps Deps) {
	logger := deps.Logger
	logger.Info("InitRouter: registering routes")

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authMW := middleware.NewAuthMiddleware(deps.JWT, logger.Named("auth"))
	api := e.Group("/api/v1", authMW.Auth)
	admin := api.Group("", authMW.RequireRole(dto.RoleAdmin))
	vendor := api.Group("", authMW.RequireRole(dto.RoleAdmin, dto.RoleVendor))

	filterLoc := config.LoadLocation(deps.Config.Filter.Timezone)
	storeCfg := deps.Config.Store
	exportCfg := deps.Config.Export
	storeLogger := logger.Named("store")
	listLogger := logger.Named("views")

	warranties := repositories.NewRecordStore[entities.Warranty](views.Warranties.Name, deps.API.ListWarranties, views.Warranties.Schema.ID, deps.Cache, storeCfg, storeLogger)
	vendors := repositories.NewRecordStore[entities.Vendor](views.Vendors.Name, deps.API.ListVendors, views.Vendors.Schema.ID, deps.Cache, storeCfg, storeLogger)
	customers := repositories.NewRecordStore[entities.Customer](views.Customers.Name, deps.API.ListCustomers, views.Customers.Schema.ID, deps.Cache, storeCfg, storeLogger)
	admins := repositories.NewRecordStore[entities.AdminUser](views.Admins.Name, deps.API.ListAdmins, views.Admins.Schema.ID, deps.Cache, storeCfg, storeLogger)
	grievances := repositories.NewRecordStore[entities.Grievance](views.Grievances.Name, deps.API.ListGrievances, views.Grievances.Schema.ID, deps.Cache, storeCfg, storeLogger)
	posm := repositories.NewRecordStore[entities.POSMRequest](views.POSM.Name, deps.API.ListPOSMRequests, views.POSM.Schema.ID, deps.Cache, storeCfg, storeLogger)
	manpower := repositories.NewRecordStore[entities.Manpower](views.Manpower.Name, deps.API.ListManpower, views.Manpower.Schema.ID, deps.Cache, storeCfg, storeLogger)

	// Activity logs are read from Postgres on every request so that new
	// actions show at once. The last read is kept only as a stale fallback.
	fetchLogs := func(ctx context.Context, _ string) ([]entities.ActivityLog, error) {
		return deps.Logs.List(ctx)
	}
	logStoreCfg := config.StoreConfig{TTL: storeCfg.TTL}
	activity := repositories.NewRecordStore[entities.ActivityLog](views.ActivityLogs.Name, fetchLogs, views.ActivityLogs.Schema.ID, nil, logStoreCfg, storeLogger)

	runListRouter(admin, views.Warranties, warranties, deps.Bus, exportCfg, filterLoc, listLogger)
	runListRouter(admin, views.Vendors, vendors, deps.Bus, exportCfg, filterLoc, listLogger)
	runListRouter(admin, views.Customers, customers, deps.Bus, exportCfg, filterLoc, listLogger)
	runListRouter(admin, views.Admins, admins, deps.Bus, exportCfg, filterLoc, listLogger)
	runListRouter(admin, views.Grievances, grievances, deps.Bus, exportCfg, filterLoc, listLogger)
	runListRouter(admin, views.POSM, posm, deps.Bus, exportCfg, filterLoc, listLogger)
	runListRouter(admin, views.ActivityLogs, activity, deps.Bus, exportCfg, filterLoc, listLogger)
	runListRouter(vendor, views.Manpower, manpower, deps.Bus, exportCfg, filterLoc, listLogger)

	actionService := services.NewActionService(deps.API, services.Stores{
		Warranties: warranties,
		Vendors:    vendors,
		Customers:  customers,
		Grievances: grievances,
		POSM:       posm,
	}, deps.Bus, logger)
	runActionRouter(admin, controllers.NewActionController(actionService, logger))

	logger.Info("InitRouter: routes registered", zap.Duration("store_refresh_after", storeCfg.RefreshAfter))
}

func runListRouter[T any](
	group *echo.Group,
	view views.View[T],
	store *repositories.RecordStore[T],
	bus *eventbus.Bus,
	exportCfg config.ExportConfig,
	filterLoc *time.Location,
	logger *zap.Logger,
) {
	listService := services.NewListService(view, store, bus, exportCfg, logger)
	ctrl := controllers.NewListController(listService, filterLoc, logger)

	base := "/" + view.Name
	group.GET(base, ctrl.List)
	group.GET(base+"/counts", ctrl.Counts)
	group.GET(base+"/export", ctrl.Export)
	group.POST(base+"/refresh", ctrl.Refresh)
}

func runActionRouter(group *echo.Group, ctrl *controllers.ActionController) {
	group.PUT("/warranties/:id/status", ctrl.UpdateWarrantyStatus)
	group.PUT("/vendors/:id/verification", ctrl.SetVendorVerification)
	group.DELETE("/vendors/:id", ctrl.DeleteVendor)
	group.DELETE("/customers/:email", ctrl.DeleteCustomer)
	group.PUT("/grievances/:id", ctrl.UpdateGrievance)
	group.PUT("/posm/:id/status", ctrl.UpdatePOSMStatus)
}

package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/vehicle-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/vehicle-dashboard/internal/config"
	"github.com/GregMSThompson/vehicle-dashboard/internal/handlers"
	"github.com/GregMSThompson/vehicle-dashboard/internal/layout"
	"github.com/GregMSThompson/vehicle-dashboard/internal/response"
	"github.com/GregMSThompson/vehicle-dashboard/internal/router"
	"github.com/GregMSThompson/vehicle-dashboard/internal/services"
	"github.com/GregMSThompson/vehicle-dashboard/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// config
	cfg, err := config.Load(os.Getenv("DASHBOARD_CONFIG"))
	exitOnError("config failed", err, slog.Default())

	// bootstrap
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// services
	dserv := services.NewDashboardService(
		func(uid string) layout.Store { return store.Scope(bs.Layouts, uid) },
		layout.WithColumns(cfg.Grid.Columns),
	)
	mserv := services.NewModuleService(bs.Modules)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.DashboardSvc = dserv
	deps.ModuleSvc = mserv

	// router
	r := router.NewRouter(deps, bs.Firebase)
	bs.Log.Info("listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}

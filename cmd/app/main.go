package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SpecCon-Team/asset-app-sub001/config"
	"github.com/SpecCon-Team/asset-app-sub001/internal/common"
	"github.com/SpecCon-Team/asset-app-sub001/internal/cron"
	"github.com/SpecCon-Team/asset-app-sub001/internal/metrics"
	miscApi "github.com/SpecCon-Team/asset-app-sub001/internal/misc/api"
	miscService "github.com/SpecCon-Team/asset-app-sub001/internal/misc/service"
	"github.com/SpecCon-Team/asset-app-sub001/internal/registry"
	uploadApi "github.com/SpecCon-Team/asset-app-sub001/internal/upload/api"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/policy"
	uploadService "github.com/SpecCon-Team/asset-app-sub001/internal/upload/service"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/validator"
	"github.com/SpecCon-Team/asset-app-sub001/pkg/format"
	"github.com/SpecCon-Team/asset-app-sub001/pkg/logger"
)

func main() {
	log := logger.New()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic recovered: %v", r)
			os.Exit(1)
		}
	}()

	// Initialize configuration
	uploadCfg := config.NewUploadConfig()
	if err := uploadCfg.Initialize(log); err != nil {
		log.Fatal("Failed to initialize upload config: %v", err)
	}
	storageCfg := config.NewStorageConfig()
	if err := storageCfg.Initialize(log); err != nil {
		log.Fatal("Failed to initialize storage config: %v", err)
	}

	store, err := storageCfg.NewStore(uploadCfg.Dir)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	log.Info("%s", format.FormatStorageBanner(storageCfg.Backend, store.Location()))

	reg, err := registry.Open(uploadCfg.RegistryPath)
	if err != nil {
		log.Fatal("Failed to open upload registry: %v", err)
	}
	defer reg.Close()

	// Initialize services
	uploadPolicy := policy.Default()
	m := metrics.New(prometheus.DefaultRegisterer)

	uploadSvc, err := uploadService.New(uploadService.Options{
		Validator: validator.New(uploadPolicy),
		Store:     store,
		Registry:  reg,
		Metrics:   m,
		Logger:    log,
	})
	if err != nil {
		log.Fatal("Failed to initialize upload service: %v", err)
	}
	miscSvc := miscService.New(uploadPolicy)

	cronManager := cron.NewManager(log, uploadSvc, config.GetCleanupSchedule(), config.GetCleanupMaxAge())
	if err := cronManager.Start(); err != nil {
		log.Fatal("Failed to add upload cleanup job: %v", err)
	}
	defer cronManager.Stop()

	// Initialize API handlers
	uploadHandler := uploadApi.NewUploadHandler(uploadSvc, m)
	if err := uploadHandler.TrustProxies(config.GetTrustedProxies()); err != nil {
		log.Fatal("Failed to configure trusted proxies: %v", err)
	}
	miscHandler := miscApi.NewMiscHandler(miscSvc)

	// Create REST API container
	container := restful.NewContainer()

	ws := new(restful.WebService)
	ws.Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	uploadApi.RegisterRoutes(ws, uploadHandler)
	miscApi.RegisterRoutes(ws, miscHandler)

	container.Add(ws)
	container.Handle("/metrics", promhttp.Handler())

	// Log API endpoints
	endpoints := make([]format.APIEndpoint, 0, len(ws.Routes())+1)
	for _, route := range ws.Routes() {
		endpoints = append(endpoints, format.APIEndpoint{
			Method:      route.Method,
			Path:        route.Path,
			Description: route.Doc,
		})
	}
	endpoints = append(endpoints, format.APIEndpoint{Method: "GET", Path: "/metrics", Description: "prometheus metrics"})
	format.LogAPIEndpoints(log, endpoints)

	cors := restful.CrossOriginResourceSharing{
		AllowedHeaders: []string{"Content-Type", "Accept", uploadApi.CSRFHeader, uploadApi.RequestIDHeader},
		ExposeHeaders:  []string{"X-Upload-Stat", uploadApi.RequestIDHeader},
		AllowedMethods: []string{"GET", "HEAD", "POST", "DELETE"},
		AllowedDomains: []string{"*"},
		CookiesAllowed: true,
		Container:      container,
	}
	container.Filter(cors.Filter)

	// Tag every request so audit entries can be correlated
	container.Filter(func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		id := req.Request.Header.Get(uploadApi.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			req.Request.Header.Set(uploadApi.RequestIDHeader, id)
		}
		resp.Header().Set(uploadApi.RequestIDHeader, id)
		chain.ProcessFilter(req, resp)
	})

	// Request logging
	container.Filter(func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		url := req.Request.URL.Path
		if req.Request.URL.RawQuery != "" {
			url += "?" + req.Request.URL.RawQuery
		}
		log.Info("%s %s %s", req.Request.Method, url, req.Request.Proto)

		if log.IsDebugEnabled() && len(req.Request.Header) > 0 {
			headers := make([]string, 0, len(req.Request.Header))
			for name, values := range req.Request.Header {
				if name == "Cookie" || name == uploadApi.CSRFHeader {
					continue
				}
				headers = append(headers, fmt.Sprintf("%s: %s", name, values[0]))
			}
			log.Debug("Headers: %s", strings.Join(headers, ", "))
		}

		chain.ProcessFilter(req, resp)

		log.Debug("Response status: %d", resp.StatusCode())
	})

	// Start server
	port := config.GetServerPort()
	addr := fmt.Sprintf(":%d", port)
	log.Info("Starting server on %s", addr)

	log.Info("Accessible URLs:")
	for _, ip := range common.GetLocalIPs() {
		log.Info("  http://%s:%d", ip, port)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{
		Addr:              addr,
		Handler:           container,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited properly")
}


// Command camserver wires the mavcam camera server core and the
// paramserver parameter store to a real MAVLink UDP endpoint: it starts a
// gomavlib node listening as a Camera component, routes inbound
// COMMAND_LONG/PARAM_* traffic to the two cores, registers a set of example
// subscribers standing in for a real camera driver, and serves Prometheus
// metrics plus a health check over HTTP.
package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bluenviron/gomavlib/v3"
	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skytether/mavcam/internal/config"
	"github.com/skytether/mavcam/internal/metrics"
	"github.com/skytether/mavcam/internal/middleware"
	"github.com/skytether/mavcam/mavcam"
	"github.com/skytether/mavcam/paramserver"
	"github.com/skytether/mavcam/scheduler"
)

func main() {
	cfg := config.Load()
	logger := log.New(log.Writer(), "[camserver] ", log.LstdFlags|log.Lshortfile)

	node, err := gomavlib.NewNode(gomavlib.NodeConf{
		Endpoints: []gomavlib.EndpointConf{
			gomavlib.EndpointUDPServer{Address: cfg.MAVLink.UDPEndpoint},
		},
		Dialect:        common.Dialect,
		OutVersion:     gomavlib.V2,
		OutSystemID:    cfg.MAVLink.SystemID,
		OutComponentID: cfg.MAVLink.ComponentID,
	})
	if err != nil {
		logger.Fatalf("failed to create MAVLink node: %v", err)
	}
	defer node.Close()

	sched := scheduler.New(scheduler.Config{Logger: logger})
	defer sched.Close()

	reg := prometheus.NewRegistry()
	mtx := metrics.New(reg)

	camServer := mavcam.New(mavcam.Config{
		Node:                    node,
		SystemID:                cfg.MAVLink.SystemID,
		ComponentID:             cfg.MAVLink.ComponentID,
		Scheduler:               sched,
		Logger:                  logger,
		OnIntervalActiveChanged: mtx.SetIntervalActive,
	})
	defer camServer.Close()

	paramStore := paramserver.New()

	info, err := config.LoadCameraInfo(cfg.Server.CameraInfoPath)
	if err != nil {
		logger.Printf("camera info not loaded (%v); starting unactivated", err)
	} else {
		camServer.SetInformation(info.Information)
		if len(info.VideoStreams) > 0 {
			camServer.SetVideoStreamInfo(info.VideoStreams)
		}
	}

	registerExampleSubscribers(camServer, mtx, logger)
	seedExampleParameters(paramStore)

	r := newRouter(node, camServer, paramStore, mtx, logger)
	go r.run()

	heartbeat := sched.AddCallEvery(time.Second, func() {
		_ = node.WriteMessageAll(&common.MessageHeartbeat{
			Type:           common.MAV_TYPE_CAMERA,
			Autopilot:      common.MAV_AUTOPILOT_INVALID,
			BaseMode:       0,
			CustomMode:     0,
			SystemStatus:   common.MAV_STATE_ACTIVE,
			MavlinkVersion: 3,
		})
	})
	defer sched.Remove(heartbeat)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{
		Addr:    cfg.DebugAddr(),
		Handler: middleware.Recovery(logger)(mux),
	}

	go func() {
		logger.Printf("debug HTTP listening on %s", cfg.DebugAddr())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Printf("debug HTTP server error: %v", err)
		}
	}()

	logger.Printf("camera server listening on %s (sysid=%d compid=%d)",
		cfg.MAVLink.UDPEndpoint, cfg.MAVLink.SystemID, cfg.MAVLink.ComponentID)

	handleShutdown(httpSrv, logger)
}

// handleShutdown blocks until SIGINT/SIGTERM, then stops the debug HTTP
// listener. Closing node/camServer/sched is handled by the deferred calls
// in main, which run as this function returns.
func handleShutdown(httpSrv *http.Server, logger *log.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Println("shutting down")
	_ = httpSrv.Close()
}

// seedExampleParameters provides a handful of parameters a real camera
// driver would register at startup, so PARAM_REQUEST_LIST returns something
// meaningful out of the box.
func seedExampleParameters(p *paramserver.Server) {
	p.ProvideParamInt("CAM_WBMODE", 0)
	p.ProvideParamFloat("CAM_EV", 0.0)
	p.ProvideParamCustom("CAM_MODE_NAME", "photo")
}

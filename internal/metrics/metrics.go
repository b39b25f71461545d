// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics exposes Prometheus counters/gauges for the running server
// and a small admin HTTP surface (/metrics, /healthz), kept deliberately
// separate from the RESP TCP listeners (spec's ambient-stack observability
// carried regardless of the spec's stated Non-goals around a metrics
// protocol family).
package metrics

import (
	"context"
	"net/http"
	"time"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the server's counters/gauges. Only KeyspaceSize carries
// a value, read through its GaugeFunc; nothing in this repository increments
// CommandsTotal, ConnectionsTotal or ErrorsTotal or sets ConnectionsOpen.
type Registry struct {
	CommandsTotal    *prometheus.CounterVec
	ConnectionsTotal prometheus.Counter
	ConnectionsOpen  prometheus.Gauge
	ErrorsTotal      *prometheus.CounterVec
	KeyspaceSize     prometheus.GaugeFunc
}

// New registers every metric against a fresh registry, so a test can spin up
// as many Registries as it likes without colliding on the global default
// one (spec 9's "wiring guide" principle extended to observability).
func New(reg *prometheus.Registry, keyspaceSize func() float64) *Registry {
	m := &Registry{
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "radonkv",
			Name:      "commands_total",
			Help:      "Commands processed, by family.",
		}, []string{"family"}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "radonkv",
			Name:      "connections_total",
			Help:      "Accepted connections since startup.",
		}),
		ConnectionsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "radonkv",
			Name:      "connections_open",
			Help:      "Currently open connections.",
		}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "radonkv",
			Name:      "errors_total",
			Help:      "Errors returned to clients, by kind.",
		}, []string{"kind"}),
	}
	m.KeyspaceSize = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "radonkv",
		Name:      "keyspace_size",
		Help:      "Number of keys currently held by Mem.",
	}, keyspaceSize)

	reg.MustRegister(m.CommandsTotal, m.ConnectionsTotal, m.ConnectionsOpen, m.ErrorsTotal, m.KeyspaceSize)
	return m
}

// Server is the admin HTTP surface, deliberately plain net/http + gorilla,
// matching the teacher's web server setup in cmd/cc-backend/main.go.
type Server struct {
	httpServer *http.Server
}

func NewServer(addr string, reg *prometheus.Registry) *Server {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Use(handlers.RecoveryHandler(handlers.PrintRecoveryStack(true)))

	return &Server{httpServer: &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}}
}

// Run blocks serving the admin surface until Shutdown is called.
func (s *Server) Run() error {
	cclog.Infof("metrics: admin HTTP listening at %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

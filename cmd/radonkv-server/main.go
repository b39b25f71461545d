// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ClusterCockpit/radonkv/internal/cluster"
	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/internal/config"
	"github.com/ClusterCockpit/radonkv/internal/dispatcher"
	"github.com/ClusterCockpit/radonkv/internal/listener"
	"github.com/ClusterCockpit/radonkv/internal/mem"
	"github.com/ClusterCockpit/radonkv/internal/metrics"
	"github.com/ClusterCockpit/radonkv/internal/proto"
	"github.com/ClusterCockpit/radonkv/internal/runtimeEnv"
	"github.com/ClusterCockpit/radonkv/internal/server"
	"github.com/ClusterCockpit/radonkv/internal/storage"
	"github.com/ClusterCockpit/radonkv/pkg/log"
	"github.com/ClusterCockpit/radonkv/pkg/nats"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

func main() {
	var flagConfigFile, flagEnvFile, flagLogLevel string
	var flagGops, flagLogDate bool
	flag.StringVar(&flagConfigFile, "config", "./config.json", "Overwrite the default configuration by those specified in `config.json`")
	flag.StringVar(&flagEnvFile, "env", "./.env", "Load environment variables from `file` before reading the config")
	flag.StringVar(&flagLogLevel, "loglevel", "info", "One of debug, info, notice, warn, err, crit")
	flag.BoolVar(&flagLogDate, "logdate", false, "Prefix log lines with a timestamp (systemd already adds one)")
	flag.BoolVar(&flagGops, "gops", false, "Listen via github.com/google/gops/agent (for debugging)")
	flag.Parse()

	log.SetLogLevel(flagLogLevel)
	log.SetLogDateTime(flagLogDate)

	// See https://github.com/google/gops (Runtime overhead is almost zero)
	if flagGops {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.Fatalf("gops/agent.Listen failed: %s", err.Error())
		}
	}

	if err := runtimeEnv.LoadEnv(flagEnvFile); err != nil && !os.IsNotExist(err) {
		log.Fatalf("parsing %q failed: %s", flagEnvFile, err.Error())
	}

	cfg, err := config.Load(flagConfigFile)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Nats.Address != "" {
		nats.Keys = cfg.Nats
		nats.Connect()
	}

	limits := resp.Limits{MaxBulkLen: cfg.Limits.MaxBulkBytes, MaxArrayLen: cfg.Limits.MaxArrayLen}

	db := mem.NewDb()
	db.SetMaxStringBytes(limits.MaxBulkLen)
	memRequests := make(chan proto.Request, 256)
	memTask := mem.NewTask(db, memRequests)

	clusterRequests := make(chan proto.Request, 16)
	clusterComponent := cluster.NewComponent(nats.GetClient())
	clusterTask := cluster.NewTask(clusterComponent, clusterRequests)

	snapshotTarget, err := newSnapshotTarget(cfg.Snapshot)
	if err != nil {
		log.Fatal(err)
	}
	storageRequests := make(chan proto.Request, 16)
	storageComponent := storage.NewComponent(snapshotTarget, memTask.Export)
	storageTask := storage.NewTask(storageComponent, storageRequests)

	if cfg.Snapshot.BGSaveInterval != "" {
		interval, err := time.ParseDuration(cfg.Snapshot.BGSaveInterval)
		if err != nil {
			log.Fatalf("config: bad bgsave-interval %q: %s", cfg.Snapshot.BGSaveInterval, err.Error())
		}
		if err := storageComponent.StartSchedule(interval); err != nil {
			log.Fatal(err)
		}
	}

	shutdownCh := make(chan server.ShutdownRequest, 1)
	serverRequests := make(chan proto.Request, 16)
	serverComponent := server.NewComponent(shutdownCh)
	serverTask := server.NewTask(serverComponent, serverRequests)

	dispatcherInbound := make(chan proto.Request, 256)
	disp := dispatcher.New(dispatcherInbound, map[command.Family]chan<- proto.Request{
		command.FamilyString:          memRequests,
		command.FamilyList:            memRequests,
		command.FamilyHash:            memRequests,
		command.FamilySet:             memRequests,
		command.FamilyBitmap:          memRequests,
		command.FamilyHyperLogLog:     memRequests,
		command.FamilyBloomFilter:     memRequests,
		command.FamilyGeneric:         memRequests,
		command.FamilyClusterManagement: clusterRequests,
		command.FamilyStorageManagement: storageRequests,
		command.FamilyServerManagement:  serverRequests,
	})

	reg := prometheus.NewRegistry()
	metrics.New(reg, memTask.Size)
	metricsServer := metrics.NewServer(cfg.MetricsAddr, reg)

	listeners := make([]*listener.Listener, 0, len(cfg.Endpoints))
	for _, ep := range cfg.Endpoints {
		listeners = append(listeners, listener.New(ep.Name, ep.Addr, dispatcherInbound, limits))
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	runTask := func(name string, run func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run(ctx)
		}()
		log.Infof("radonkv: started %s task", name)
	}

	runTask("mem", memTask.Run)
	runTask("cluster", clusterTask.Run)
	runTask("storage", storageTask.Run)
	runTask("server", serverTask.Run)
	runTask("dispatcher", disp.Run)

	for _, l := range listeners {
		l := l
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Run(ctx); err != nil {
				log.Errorf("listener: %v", err)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := metricsServer.Run(); err != nil {
			log.Errorf("metrics: %v", err)
		}
	}()

	if err := runtimeEnv.DropPrivileges(cfg.User, cfg.Group); err != nil {
		log.Fatalf("error while changing user: %s", err.Error())
	}

	runtimeEnv.SystemdNotifiy(true, "radonkv ready")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGUSR1)

loop:
	for {
		select {
		case sig := <-sigs:
			switch sig {
			case syscall.SIGUSR1:
				log.Info("radonkv: SIGUSR1 received, nothing to reload")
			default:
				log.Infof("radonkv: %s received, shutting down", sig)
				break loop
			}
		case req := <-shutdownCh:
			log.Infof("radonkv: SHUTDOWN received (nosave=%v)", req.NoSave)
			break loop
		}
	}

	runtimeEnv.SystemdNotifiy(false, "radonkv shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	metricsServer.Shutdown(shutdownCtx)
	shutdownCancel()

	cancel()
	storageComponent.StopSchedule()
	wg.Wait()
}

func newSnapshotTarget(cfg config.SnapshotConfig) (storage.SnapshotTarget, error) {
	switch cfg.Target {
	case "s3":
		return storage.NewS3Target(storage.S3TargetConfig{
			Endpoint:     cfg.S3Endpoint,
			Bucket:       cfg.S3Bucket,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Region:       cfg.S3Region,
			UsePathStyle: cfg.S3UsePathStyle,
		})
	default:
		return storage.NewFileTarget(cfg.FilePath)
	}
}

package main

import (
	"log/slog"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angeloszaimis/log-output/internal/handler"
	"github.com/angeloszaimis/log-output/internal/metrics"
	"github.com/angeloszaimis/log-output/internal/pingpong"
	"github.com/angeloszaimis/log-output/internal/todo"
)

func setupStatusRouter(log *slog.Logger, counter handler.Counter, statusFile string, collector *metrics.Collector, gatherer prometheus.Gatherer) *mux.Router {
	r := mux.NewRouter()
	r.Use(handler.Logging(log))

	handler.NewStatusHandler(log, counter, statusFile).Register(r)
	r.Handle("/metrics", metrics.PrometheusHandler(gatherer))
	r.HandleFunc("/metrics/fetch", collector.Handler())

	return r
}

func setupPingPongRouter(log *slog.Logger, counter *pingpong.Counter) *mux.Router {
	r := mux.NewRouter()
	r.Use(handler.Logging(log))

	handler.NewPingPongHandler(counter).Register(r)

	return r
}

func setupTodoRouter(log *slog.Logger, store todo.Store) *mux.Router {
	r := mux.NewRouter()
	r.Use(handler.Logging(log))

	handler.NewTodoHandler(log, store).Register(r)

	return r
}

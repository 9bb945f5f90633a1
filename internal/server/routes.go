package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Reports
	mux.HandleFunc("/api/feasibility", s.app.ReportHandler.FeasibilityHandler) // POST - feasibility report
	mux.HandleFunc("/api/stock", s.app.ReportHandler.StockHandler)             // POST - stock signal report

	// API routes - Scheduler
	mux.HandleFunc("/api/refresh", s.app.SchedulerHandler.RefreshHandler)    // POST - trigger refresh now
	mux.HandleFunc("/api/settings", s.app.SchedulerHandler.SettingsHandler)  // GET/POST - refresh interval
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)      // GET - application status

	// API routes - Corpus
	mux.HandleFunc("/api/data", s.app.DataHandler.GetDataHandler)                     // GET - corpus dump
	mux.HandleFunc("/api/stats", s.app.DataHandler.GetStatsHandler)                   // GET - aggregate stats
	mux.HandleFunc("/api/scrape-history", s.app.HistoryHandler.ScrapeHistoryHandler)  // POST - historical window

	// API routes - Subscribers
	mux.HandleFunc("/api/subscribe", s.app.SubscriberHandler.SubscribeHandler)         // POST - register recipient
	mux.HandleFunc("/api/subscribers", s.app.SubscriberHandler.ListSubscribersHandler) // GET - recipient list

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

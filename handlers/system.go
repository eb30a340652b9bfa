package handlers

import (
	"fmt"
	"net/http"

	"github.com/apex/log"
)

type versionSummary struct {
	Commit  string `json:"commit"`
	Version string `json:"version"`
}

func (s *Service) registerSystem(mux *http.ServeMux) {
	mux.HandleFunc("/_status", systemStatus)
	mux.HandleFunc("/_version", s.systemVersion)
}

func systemStatus(w http.ResponseWriter, r *http.Request) {
	if !isRead(r) {
		notFound(w, r)
		return
	}
	if _, err := fmt.Fprint(w, "Healthy"); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}

func (s *Service) systemVersion(w http.ResponseWriter, r *http.Request) {
	if !isRead(r) {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, versionSummary{Commit: s.build.CommitSHA, Version: s.Version()})
}

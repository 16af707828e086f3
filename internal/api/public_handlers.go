package api

import (
	"net/http"

	"github.com/darmiel/voxauth/internal/api/presenter"
	"github.com/darmiel/voxauth/internal/buildinfo"
)

type aboutResponse struct {
	buildinfo.Info
	Issuer string `json:"issuer"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleAbout reports the build and the issuer tokens are fetched from.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, aboutResponse{
		Info:   buildinfo.GetBuildInfo(),
		Issuer: s.provider.IssuerName(),
	}, http.StatusOK)
}

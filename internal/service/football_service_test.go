package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kitlane/internal/config"
)

func newFootballTestServer(t *testing.T, handler http.HandlerFunc) (*FootballService, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewFootballService(config.FootballConfig{
		BaseURL:  server.URL,
		APIToken: "test-token",
	})
	return svc, server
}

func TestFootballStandingsProxiesUpstream(t *testing.T) {
	var gotPath, gotToken string
	svc, _ := newFootballTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Auth-Token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"competition":{"code":"PL"},"standings":[]}`))
	})

	payload, err := svc.CompetitionStandings(context.Background(), "pl")
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if gotPath != "/competitions/PL/standings" {
		t.Fatalf("competition code must be upper-cased in path, got %s", gotPath)
	}
	if gotToken != "test-token" {
		t.Fatalf("auth token must be forwarded, got %q", gotToken)
	}

	var decoded struct {
		Competition struct {
			Code string `json:"code"`
		} `json:"competition"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if decoded.Competition.Code != "PL" {
		t.Fatalf("payload must be passed through untouched, got %+v", decoded)
	}
}

func TestFootballMatchesAndTeamPaths(t *testing.T) {
	var gotPath string
	svc, _ := newFootballTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	})

	if _, err := svc.CompetitionMatches(context.Background(), "CL"); err != nil {
		t.Fatalf("matches failed: %v", err)
	}
	if gotPath != "/competitions/CL/matches" {
		t.Fatalf("unexpected matches path %s", gotPath)
	}

	if _, err := svc.Team(context.Background(), 57); err != nil {
		t.Fatalf("team failed: %v", err)
	}
	if gotPath != "/teams/57" {
		t.Fatalf("unexpected team path %s", gotPath)
	}
}

func TestFootballUpstreamNotFound(t *testing.T) {
	svc, _ := newFootballTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	if _, err := svc.CompetitionStandings(context.Background(), "XX"); err != ErrFootballNotFound {
		t.Fatalf("expected ErrFootballNotFound, got %v", err)
	}
}

func TestFootballUpstreamErrors(t *testing.T) {
	svc, _ := newFootballTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if _, err := svc.CompetitionStandings(context.Background(), "PL"); err != ErrFootballUpstream {
		t.Fatalf("expected ErrFootballUpstream on 500, got %v", err)
	}

	svc, _ = newFootballTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})
	if _, err := svc.CompetitionStandings(context.Background(), "PL"); err != ErrFootballUpstream {
		t.Fatalf("expected ErrFootballUpstream on invalid body, got %v", err)
	}
}

func TestFootballRejectsEmptyIdentifiers(t *testing.T) {
	svc := NewFootballService(config.FootballConfig{BaseURL: "http://127.0.0.1:0"})

	if _, err := svc.CompetitionStandings(context.Background(), "  "); err != ErrFootballNotFound {
		t.Fatalf("expected ErrFootballNotFound for blank code, got %v", err)
	}
	if _, err := svc.CompetitionMatches(context.Background(), ""); err != ErrFootballNotFound {
		t.Fatalf("expected ErrFootballNotFound for blank code, got %v", err)
	}
	if _, err := svc.Team(context.Background(), 0); err != ErrFootballNotFound {
		t.Fatalf("expected ErrFootballNotFound for zero id, got %v", err)
	}
}

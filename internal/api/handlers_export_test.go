package api

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/terraincognita07/kira/internal/services"
)

func TestExportCSVIncludesHeaderAndRows(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	token := registerUser(t, app, "owner@example.com")

	for date, body := range map[string]map[string]any{
		"2026-03-01": {"flow": "heavy", "mood": "low", "symptoms": []string{"CRAMPS"}},
		"2026-03-02": {"mood": "good", "sleep": 8, "notes": "walk, then tea"},
	} {
		response := doRequest(t, app, http.MethodPost, "/api/days/"+date, body, token)
		response.Body.Close()
	}

	response := doRequest(t, app, http.MethodGet, "/api/export?format=csv", nil, token)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if !strings.HasPrefix(response.Header.Get("Content-Type"), "text/csv") {
		t.Fatalf("unexpected content type %q", response.Header.Get("Content-Type"))
	}
	if !strings.Contains(response.Header.Get("Content-Disposition"), "kira-export-2026-03-31.csv") {
		t.Fatalf("unexpected content disposition %q", response.Header.Get("Content-Disposition"))
	}

	rows, err := csv.NewReader(strings.NewReader(readBody(t, response))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(services.ExportCSVHeaders, ",") {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "2026-03-01" || rows[1][1] != "Yes" || rows[1][2] != "Heavy" {
		t.Fatalf("unexpected first row %v", rows[1])
	}
	if rows[2][7] != "walk, then tea" {
		t.Fatalf("expected quoted notes to survive, got %q", rows[2][7])
	}
}

func TestExportJSONHonoursRange(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	token := registerUser(t, app, "owner@example.com")

	for _, date := range []string{"2026-03-01", "2026-03-05", "2026-03-09"} {
		response := doRequest(t, app, http.MethodPost, "/api/days/"+date, map[string]any{"mood": "okay"}, token)
		response.Body.Close()
	}

	var entries []services.ExportJSONEntry
	decodeJSON(t, doRequest(t, app, http.MethodGet, "/api/export?from=2026-03-02&to=2026-03-09", nil, token), &entries)
	if len(entries) != 2 || entries[0].Date != "2026-03-05" || entries[1].Date != "2026-03-09" {
		t.Fatalf("unexpected export %#v", entries)
	}

	var summary services.ExportSummary
	decodeJSON(t, doRequest(t, app, http.MethodGet, "/api/export/summary", nil, token), &summary)
	if summary.TotalEntries != 3 || summary.DateFrom != "2026-03-01" || summary.DateTo != "2026-03-09" {
		t.Fatalf("unexpected summary %#v", summary)
	}
}

func TestExportRejectsBadInput(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	token := registerUser(t, app, "owner@example.com")

	cases := []struct {
		path string
		want string
	}{
		{path: "/api/export?format=xml", want: "invalid export format"},
		{path: "/api/export?from=2026-03-09&to=2026-03-01", want: "invalid date range"},
		{path: "/api/export/summary?to=yesterday", want: "invalid to date"},
	}
	for _, tc := range cases {
		response := doRequest(t, app, http.MethodGet, tc.path, nil, token)
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", tc.path, response.StatusCode)
		}
		if got := readAPIError(t, response.Body); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.path, tc.want, got)
		}
		response.Body.Close()
	}
}

func TestExportRequiresSession(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	response := doRequest(t, app, http.MethodGet, "/api/export", nil, "")
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
}

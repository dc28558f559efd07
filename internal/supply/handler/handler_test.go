package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	excelize "github.com/xuri/excelize/v2"

	"supply-service/internal/config"
	"supply-service/internal/supply/handler"
	"supply-service/internal/supply/model"
)

func testConfig() config.Config {
	return config.Config{
		MaxUploadMB:    8,
		PreferredSheet: "연간",
		HeaderScanRows: 20,
		MaxDailyGJ:     100000,
	}
}

func uploadBody(t *testing.T, rows [][]interface{}, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "연간"); err != nil {
		t.Fatalf("SetSheetName failed: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		r := row
		if err := f.SetSheetRow("연간", cell, &r); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "supply.xlsx")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if err := f.Write(fw); err != nil {
		t.Fatalf("workbook write failed: %v", err)
	}
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	_ = mw.Close()
	return &body, mw.FormDataContentType()
}

type metricsResponse struct {
	Summary model.Summary    `json:"summary"`
	Rank    model.RankResult `json:"rank"`
}

func TestHandler_IngestThenMetrics(t *testing.T) {
	h := handler.New(testConfig(), zerolog.Nop())

	body, ct := uploadBody(t, [][]interface{}{
		{"날짜", "계획(GJ)", "실적(GJ)"},
		{"2024-01-01", 100, 120},
		{"2024-01-02", 100, 80},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/supply/ingest", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("X-Session-ID", "s1")
	rec := httptest.NewRecorder()
	h.Ingest(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("ingest status=%d body=%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/supply/metrics?date=2024-01-01", nil)
	req.Header.Set("X-Session-ID", "s1")
	rec = httptest.NewRecorder()
	h.Metrics(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status=%d body=%s", rec.Code, rec.Body.String())
	}
	var mr metricsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &mr); err != nil {
		t.Fatalf("bad metrics json: %v", err)
	}
	if mr.Summary.Day.PlannedGJ != 100 || mr.Summary.Day.ActualGJ != 120 || mr.Summary.Day.Rate != 120.0 {
		t.Fatalf("day=%+v", mr.Summary.Day)
	}
	if !mr.Rank.Applicable || mr.Rank.Overall != 1 {
		t.Fatalf("rank=%+v, want overall 1 (other actual is 80)", mr.Rank)
	}
}

func TestHandler_IngestHeaderNotFound(t *testing.T) {
	h := handler.New(testConfig(), zerolog.Nop())

	body, ct := uploadBody(t, [][]interface{}{
		{"제목"},
		{"값", 1},
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/supply/ingest", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.Ingest(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d, want 422", rec.Code)
	}
}

func TestHandler_EditRecomputes(t *testing.T) {
	h := handler.New(testConfig(), zerolog.Nop())

	body, ct := uploadBody(t, [][]interface{}{
		{"날짜", "계획(GJ)", "실적(GJ)"},
		{"2024-01-01", 100, 0},
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/supply/ingest", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("X-Session-ID", "s1")
	rec := httptest.NewRecorder()
	h.Ingest(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("ingest status=%d", rec.Code)
	}

	edit := bytes.NewBufferString(`{"date":"2024-01-01","field":"actual_energy","value":110}`)
	req = httptest.NewRequest(http.MethodPost, "/supply/edit", edit)
	req.Header.Set("X-Session-ID", "s1")
	rec = httptest.NewRecorder()
	h.Edit(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("edit status=%d body=%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/supply/metrics?date=2024-01-01", nil)
	req.Header.Set("X-Session-ID", "s1")
	rec = httptest.NewRecorder()
	h.Metrics(rec, req)
	var mr metricsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &mr); err != nil {
		t.Fatalf("bad metrics json: %v", err)
	}
	if mr.Summary.Day.ActualGJ != 110 || mr.Summary.Day.PlannedGJ != 100 {
		t.Fatalf("day=%+v, want the edited actual and the original plan", mr.Summary.Day)
	}
}

func TestHandler_SessionsIsolated(t *testing.T) {
	h := handler.New(testConfig(), zerolog.Nop())

	body, ct := uploadBody(t, [][]interface{}{
		{"날짜", "실적(GJ)"},
		{"2024-01-01", 120},
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/supply/ingest", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("X-Session-ID", "s1")
	rec := httptest.NewRecorder()
	h.Ingest(rec, req)

	req = httptest.NewRequest(http.MethodGet, "/supply/records", nil)
	req.Header.Set("X-Session-ID", "s2")
	rec = httptest.NewRecorder()
	h.Records(rec, req)
	var recs []model.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &recs); err != nil {
		t.Fatalf("bad records json: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("session s2 sees s1's records: %v", recs)
	}
}

func TestHandler_ResetDropsStore(t *testing.T) {
	h := handler.New(testConfig(), zerolog.Nop())

	body, ct := uploadBody(t, [][]interface{}{
		{"날짜", "실적(GJ)"},
		{"2024-01-01", 120},
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/supply/ingest", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("X-Session-ID", "s1")
	h.Ingest(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPost, "/supply/reset", nil)
	req.Header.Set("X-Session-ID", "s1")
	h.Reset(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/supply/records", nil)
	req.Header.Set("X-Session-ID", "s1")
	rec := httptest.NewRecorder()
	h.Records(rec, req)
	var recs []model.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &recs); err != nil {
		t.Fatalf("bad records json: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("reset did not drop records: %v", recs)
	}
}

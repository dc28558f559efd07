package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"supply-service/internal/config"
	"supply-service/internal/fileio"
	"supply-service/internal/supply/metrics"
	"supply-service/internal/supply/model"
	supSvc "supply-service/internal/supply/service"
)

// Handler owns the per-session stores and exposes the supply endpoints.
type Handler struct {
	cfg      config.Config
	logger   zerolog.Logger
	sessions *Sessions
}

func New(cfg config.Config, logger zerolog.Logger) *Handler {
	return &Handler{cfg: cfg, logger: logger, sessions: NewSessions()}
}

// Ingest: multipart upload of one workbook. Form fields: file, mode
// (replace|merge), source (pass label, defaults to the filename),
// sheet (overrides the configured preferred sheet name).
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := h.reqLogger(r)

	defer r.Body.Close()
	if err := r.ParseMultipartForm(int64(h.cfg.MaxUploadMB) << 20); err != nil {
		httpError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpError(w, http.StatusBadRequest, "missing file: "+err.Error())
		return
	}
	defer file.Close()

	sheet := r.FormValue("sheet")
	if sheet == "" {
		sheet = h.cfg.PreferredSheet
	}
	grid, err := fileio.ReadGrid(file, header.Filename, sheet)
	if err != nil {
		httpError(w, http.StatusBadRequest, "failed to read workbook: "+err.Error())
		return
	}

	source := r.FormValue("source")
	if source == "" {
		source = header.Filename
	}

	st := h.sessions.Get(h.sessionID(w, r))
	res, err := supSvc.Ingest(st, grid,
		supSvc.ParseMode(r.FormValue("mode")), source,
		supSvc.Options{ScanRows: h.cfg.HeaderScanRows, MaxDailyGJ: h.cfg.MaxDailyGJ},
		log)
	if err != nil {
		status := http.StatusUnprocessableEntity
		var me *model.MappingError
		switch {
		case errors.Is(err, model.ErrHeaderNotFound):
			httpError(w, status, "no header row found in the first rows of the sheet")
		case errors.As(err, &me):
			httpError(w, status, me.Error())
		default:
			httpError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, res)
	log.Info().
		Str("file", header.Filename).
		Int("upserted", res.Upserted).
		Int("skipped", res.Skipped.Total()).
		Dur("elapsed", time.Since(start)).
		Msg("ingest done")
}

// Metrics: Day/MTD/YTD aggregates plus ranks for ?date=YYYY-MM-DD.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	date, ok := queryDate(w, r, "date")
	if !ok {
		return
	}
	st := h.sessions.Get(h.sessionID(w, r))

	summary := metrics.Summarize(st, date)
	rec, _ := st.Query(date)
	rank := metrics.Rank(st, date, rec.ActualGJ)

	writeJSON(w, struct {
		Summary model.Summary    `json:"summary"`
		Rank    model.RankResult `json:"rank"`
	}{summary, rank})
}

// Records: ?from=&to= range query, date-ordered. Both bounds optional.
func (h *Handler) Records(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Get(h.sessionID(w, r))

	if r.URL.Query().Get("from") == "" && r.URL.Query().Get("to") == "" {
		writeJSON(w, st.All())
		return
	}
	from, ok := queryDate(w, r, "from")
	if !ok {
		return
	}
	to, ok := queryDate(w, r, "to")
	if !ok {
		return
	}
	writeJSON(w, st.Range(from, to))
}

type editRequest struct {
	Date  string  `json:"date"`
	Field string  `json:"field"`
	Value float64 `json:"value"`
}

// Edit: one cell for one date, merged subset-style so the other fields
// of the stored record survive. The caller re-queries /metrics after.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		httpError(w, http.StatusBadRequest, "bad date: "+req.Date)
		return
	}

	rec := model.Record{Date: date}
	field := model.Field(req.Field)
	switch field {
	case model.FieldPlannedEnergy:
		rec.PlannedGJ = req.Value
	case model.FieldActualEnergy:
		rec.ActualGJ = req.Value
	case model.FieldPlannedVolume:
		rec.PlannedM3 = req.Value
	case model.FieldActualVolume:
		rec.ActualM3 = req.Value
	case model.FieldTemperature:
		v := req.Value
		rec.Temperature = &v
	default:
		httpError(w, http.StatusBadRequest, "unknown field: "+req.Field)
		return
	}
	if field != model.FieldTemperature && req.Value < 0 {
		httpError(w, http.StatusBadRequest, "value must be non-negative")
		return
	}

	st := h.sessions.Get(h.sessionID(w, r))
	st.UpsertOne(rec, model.Fields(field), "edit")

	out, _ := st.Query(date)
	writeJSON(w, out)
}

// Export: the store as an .xlsx download, one row per record.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Get(h.sessionID(w, r))
	f, err := supSvc.ExportWorkbook(st, h.cfg.PreferredSheet)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "export failed: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="supply.xlsx"`)
	if err := f.Write(w); err != nil {
		log := h.reqLogger(r)
		log.Error().Err(err).Msg("write xlsx")
	}
}

// Reset: explicit wipe of the session's store.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.sessions.Drop(h.sessionID(w, r))
	writeJSON(w, map[string]string{"status": "reset"})
}

// sessionID binds the request to a store; a fresh id is minted and
// echoed back when the client sent none.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get("X-Session-ID")
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set("X-Session-ID", id)
	return id
}

func (h *Handler) reqLogger(r *http.Request) zerolog.Logger {
	if rid := r.Header.Get("X-Request-ID"); rid != "" {
		return h.logger.With().Str("req_id", rid).Logger()
	}
	return h.logger
}

func queryDate(w http.ResponseWriter, r *http.Request, key string) (time.Time, bool) {
	s := r.URL.Query().Get(key)
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		httpError(w, http.StatusBadRequest, "bad "+key+" date: "+s)
		return time.Time{}, false
	}
	return t, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

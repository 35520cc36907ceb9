package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/cimtrainer/trainlog/internal/storage"
	"github.com/cimtrainer/trainlog/internal/telemetry/tracing"
	"github.com/cimtrainer/trainlog/internal/userdata"
	"github.com/cimtrainer/trainlog/pkg"
)

// importMaxBytes bounds uploaded documents; real ones are a few hundred KB.
const importMaxBytes = 10 << 20

type SettingsHandler struct {
	facade      *storage.Facade
	versionInfo string
}

func NewSettingsHandler(facade *storage.Facade, versionInfo string) *SettingsHandler {
	return &SettingsHandler{
		facade:      facade,
		versionInfo: versionInfo,
	}
}

func (handler *SettingsHandler) HandleSetStartDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.setStartDate")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var params struct {
		StartDate string `json:"startDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("set start date, unmarshal json params: %s", err)
		http.Error(w, "set start date failed", http.StatusBadRequest)
		return
	}
	if params.StartDate == "" {
		http.Error(w, "error, start date empty", http.StatusBadRequest)
		return
	}

	if err := handler.facade.SetStartDate(ctx, params.StartDate); err != nil {
		writeMutationError(w, "set start date", err)
		return
	}
	pkg.WriteTextResponseOK(w, "saved")
}

func (handler *SettingsHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.reset")
	defer span.End()

	if err := handler.facade.Reset(ctx); err != nil {
		writeMutationError(w, "reset", err)
		return
	}

	log.Warn("user data reset to defaults")
	pkg.WriteTextResponseOK(w, "reset")
}

func (handler *SettingsHandler) HandleSetOverride(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.setOverride")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	phase, err := strconv.Atoi(vars["phase"])
	if err != nil {
		http.Error(w, "error, phase NaN", http.StatusBadRequest)
		return
	}

	var override userdata.SetsRepsOverride
	if err := json.NewDecoder(r.Body).Decode(&override); err != nil {
		log.Errorf("set override, unmarshal json params: %s", err)
		http.Error(w, "set override failed", http.StatusBadRequest)
		return
	}

	if err := handler.facade.SetExerciseSetsReps(ctx, vars["exerciseId"], phase, override); err != nil {
		writeMutationError(w, "set override", err)
		return
	}
	pkg.WriteTextResponseOK(w, "saved")
}

func (handler *SettingsHandler) HandleClearOverride(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.clearOverride")
	defer span.End()

	vars := mux.Vars(r)
	phase, err := strconv.Atoi(vars["phase"])
	if err != nil {
		http.Error(w, "error, phase NaN", http.StatusBadRequest)
		return
	}

	if err := handler.facade.ClearExerciseSetsReps(ctx, vars["exerciseId"], phase); err != nil {
		writeMutationError(w, "clear override", err)
		return
	}
	pkg.WriteTextResponseOK(w, "cleared")
}

func (handler *SettingsHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.export")
	defer span.End()

	envelope, err := handler.facade.Export(ctx)
	if err != nil {
		writeMutationError(w, "export", err)
		return
	}

	envelopeJson, err := json.Marshal(envelope)
	if err != nil {
		log.Errorf("failed to marshal export envelope: %s", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="trainlog-export.json"`)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, envelopeJson, http.StatusOK)
}

func (handler *SettingsHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.import")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, importMaxBytes))
	if err != nil {
		log.Errorf("import, read body: %s", err)
		http.Error(w, "import failed", http.StatusBadRequest)
		return
	}

	if err := handler.facade.Import(ctx, raw); err != nil {
		writeMutationError(w, "import", err)
		return
	}
	pkg.WriteTextResponseOK(w, "imported")
}

func (handler *SettingsHandler) HandleVersion(w http.ResponseWriter, r *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/cimtrainer/trainlog/internal/schedule"
	"github.com/cimtrainer/trainlog/internal/telemetry/tracing"
	"github.com/cimtrainer/trainlog/internal/userdata"
)

const AppName = "trainlog"

var ErrInvalidImport = errors.New("invalid import payload")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Envelope is the export file format: the document wrapped with enough
// metadata to recognize it on import.
type Envelope struct {
	AppName    string             `json:"appName"`
	AppVersion string             `json:"appVersion"`
	ExportDate time.Time          `json:"exportDate"`
	Data       *userdata.Document `json:"data"`
}

// Export wraps a copy of the current document in an export envelope.
func (f *Facade) Export(ctx context.Context) (*Envelope, error) {
	doc, err := f.Document(ctx)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		AppName:    AppName,
		AppVersion: userdata.CurrentVersion,
		ExportDate: time.Now(),
		Data:       doc,
	}, nil
}

// Import replaces the whole document with an uploaded one. Both the
// export envelope and a bare document are accepted. The payload is
// validated and migrated before it replaces anything; on any failure
// the current document stays exactly as it was.
func (f *Facade) Import(ctx context.Context, raw []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "storage.import")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docJson, err := extractDocumentJson(raw)
	if err != nil {
		return err
	}

	doc, err := parseImportedDocument(docJson)
	if err != nil {
		return err
	}

	applied := userdata.Migrate(doc)

	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.state != StateReady {
		return ErrNotReady
	}

	f.doc = doc
	if err := f.persistLocked(ctx); err != nil {
		return err
	}

	f.instr.CounterImports.Inc()
	if applied > 0 {
		f.instr.CounterMigrations.Add(float64(applied))
	}
	log.Infof("user data document imported (version %s, %d day logs)", doc.Version, len(doc.Logs))

	return nil
}

// extractDocumentJson unwraps an export envelope, or returns the raw
// payload unchanged when it is a bare document.
func extractDocumentJson(raw []byte) ([]byte, error) {
	var envelope struct {
		AppName string          `json:"appName"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %s", ErrInvalidImport, err)
	}
	if len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
		return envelope.Data, nil
	}
	return raw, nil
}

// parseImportedDocument checks the shape of the payload before the
// lenient document unmarshalling papers over missing fields.
func parseImportedDocument(docJson []byte) (*userdata.Document, error) {
	var probe struct {
		StartDate string          `json:"startDate"`
		Logs      json.RawMessage `json:"logs"`
	}
	if err := json.Unmarshal(docJson, &probe); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImport, err)
	}
	if probe.StartDate == "" {
		return nil, fmt.Errorf("%w: missing startDate", ErrInvalidImport)
	}
	if _, err := schedule.ParseDay(probe.StartDate); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImport, err)
	}
	if len(probe.Logs) == 0 || probe.Logs[0] != '{' {
		return nil, fmt.Errorf("%w: logs must be an object keyed by date", ErrInvalidImport)
	}

	doc, err := userdata.Unmarshal(docJson)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImport, err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImport, err)
	}

	return doc, nil
}

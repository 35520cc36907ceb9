package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/cimtrainer/trainlog/internal/metrics"
	"github.com/cimtrainer/trainlog/internal/telemetry/tracing"
	"github.com/cimtrainer/trainlog/internal/userdata"
)

// State is the lifecycle of the facade: nothing may be read or mutated
// before Load has brought it to StateReady.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
)

const (
	persistOutcomeOk    = "ok"
	persistOutcomeError = "error"
)

// Facade owns the in-memory user data document and keeps two backends
// behind it: a synchronous file store that every mutation hits before
// returning, and a best-effort durable badger store written to in the
// background. Once loaded, the in-memory document is canonical; the
// backends only matter again on the next startup.
type Facade struct {
	mutex sync.RWMutex
	state State
	doc   *userdata.Document

	fileStore    Store
	durableStore Store
	// durableAlive goes false for the rest of the session when the
	// durable store fails on load; there is no re-open attempt.
	durableAlive bool

	instr *metrics.Manager

	// pending async durable writes, drained on Close
	wg sync.WaitGroup
}

// NewFacade wires the two backends. durableStore may be nil when
// opening it failed; the facade then runs in file-only fallback mode.
func NewFacade(fileStore Store, durableStore Store, instr *metrics.Manager) *Facade {
	return &Facade{
		state:        StateUninitialized,
		fileStore:    fileStore,
		durableStore: durableStore,
		durableAlive: durableStore != nil,
		instr:        instr,
	}
}

// State returns the current lifecycle state.
func (f *Facade) State() State {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.state
}

// DurableAlive reports whether the badger store is usable this session.
func (f *Facade) DurableAlive() bool {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.durableAlive
}

// Load reads the document into memory: the durable store is preferred,
// the file store is the fallback, and a fresh default document is
// created when neither has one. Stale documents are migrated and
// persisted back. Load must complete before any other method is used.
func (f *Facade) Load(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "storage.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.state == StateReady {
		return errors.New("storage already loaded")
	}
	f.state = StateLoading

	f.updateDurableGauge()

	data, loadedFrom, err := f.readPreferred(ctx)
	if err != nil {
		f.state = StateUninitialized
		return err
	}

	var doc *userdata.Document
	if data != nil {
		doc, err = userdata.Unmarshal(data)
		if err != nil {
			// corrupt persisted data must never kill the process: a bad
			// durable copy still leaves the file floor to try, a bad
			// file copy means starting over with a default document
			log.Errorf("corrupt user data document in %s store: %s", loadedFrom, err)
			doc = nil
			if f.durableAlive && loadedFrom == f.durableStore.Name() {
				f.durableAlive = false
				f.updateDurableGauge()
				if fileData, readErr := f.fileStore.Read(ctx); readErr == nil {
					fileDoc, parseErr := userdata.Unmarshal(fileData)
					if parseErr == nil {
						doc = fileDoc
						loadedFrom = f.fileStore.Name()
					} else {
						log.Errorf("corrupt user data document in %s store: %s", f.fileStore.Name(), parseErr)
					}
				}
			}
		}
	}

	if doc == nil {
		log.Info("no usable stored user data, creating a default document")
		f.doc = userdata.NewDefaultDocument(userdata.DefaultStartDate)
		return f.persistLocked(ctx)
	}
	f.doc = doc

	log.Infof("user data document loaded from %s store (version %s, %d day logs)",
		loadedFrom, doc.Version, len(doc.Logs))

	applied := userdata.Migrate(doc)
	if applied > 0 {
		f.instr.CounterMigrations.Add(float64(applied))
		return f.persistLocked(ctx)
	}

	// a document present only in the file store gets seeded into the
	// durable store so the next load can prefer it
	if loadedFrom == f.fileStore.Name() && f.durableAlive {
		f.writeDurableAsync(data)
	}

	f.state = StateReady
	return nil
}

// readPreferred tries the durable store first, then the file store.
// A durable read failure downgrades the session to file-only mode
// instead of failing the load. Returns nil data when no store has a
// document.
func (f *Facade) readPreferred(ctx context.Context) (data []byte, loadedFrom string, err error) {
	if f.durableAlive {
		data, err := f.durableStore.Read(ctx)
		switch {
		case err == nil:
			return data, f.durableStore.Name(), nil
		case errors.Is(err, ErrDocumentNotFound):
			// fall through to the file store
		default:
			log.Warnf("durable store read failed, falling back to file store for this session: %s", err)
			f.durableAlive = false
			f.updateDurableGauge()
		}
	}

	data, err = f.fileStore.Read(ctx)
	switch {
	case err == nil:
		return data, f.fileStore.Name(), nil
	case errors.Is(err, ErrDocumentNotFound):
		return nil, "", nil
	default:
		return nil, "", fmt.Errorf("read document from file store: %w", err)
	}
}

// Document returns a deep copy of the current document.
func (f *Facade) Document(ctx context.Context) (*userdata.Document, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "storage.document")
	defer span.End()

	f.mutex.RLock()
	defer f.mutex.RUnlock()

	if f.state != StateReady {
		return nil, ErrNotReady
	}
	return f.doc.Clone()
}

// mutate runs fn on the cached document under the write lock and
// persists the result. When fn fails nothing is persisted, but note
// that fn works on the live document and must not mutate on error.
func (f *Facade) mutate(ctx context.Context, name string, fn func(d *userdata.Document) error) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, name)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.state != StateReady {
		return ErrNotReady
	}

	if err := fn(f.doc); err != nil {
		return err
	}

	return f.persistLocked(ctx)
}

// persistLocked writes the document to the file store synchronously and
// to the durable store in the background. A file store failure is
// returned to the caller, but the in-memory document keeps the change
// either way.
func (f *Facade) persistLocked(ctx context.Context) error {
	data, err := userdata.Marshal(f.doc)
	if err != nil {
		return err
	}

	if err := f.fileStore.Write(ctx, data); err != nil {
		f.instr.CounterDocumentPersists.WithLabelValues(f.fileStore.Name(), persistOutcomeError).Inc()
		log.Errorf("file store write failed, document kept in memory only: %s", err)
		if f.state == StateLoading {
			f.state = StateReady
		}
		return fmt.Errorf("persist document: %w", err)
	}
	f.instr.CounterDocumentPersists.WithLabelValues(f.fileStore.Name(), persistOutcomeOk).Inc()

	if f.durableAlive {
		f.writeDurableAsync(data)
	}

	if f.state == StateLoading {
		f.state = StateReady
	}
	return nil
}

// writeDurableAsync fires a best-effort background write. Failures are
// logged and counted, never surfaced.
func (f *Facade) writeDurableAsync(data []byte) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		if err := f.durableStore.Write(context.Background(), data); err != nil {
			f.instr.CounterDocumentPersists.WithLabelValues(f.durableStore.Name(), persistOutcomeError).Inc()
			log.Warnf("durable store write failed: %s", err)
			return
		}
		f.instr.CounterDocumentPersists.WithLabelValues(f.durableStore.Name(), persistOutcomeOk).Inc()
	}()
}

func (f *Facade) updateDurableGauge() {
	if f.durableAlive {
		f.instr.GaugeDurableStoreAlive.Set(1)
	} else {
		f.instr.GaugeDurableStoreAlive.Set(0)
	}
}

// waitPendingWrites blocks until queued durable writes have landed.
func (f *Facade) waitPendingWrites() {
	f.wg.Wait()
}

// Close waits for pending durable writes and closes both backends.
func (f *Facade) Close() error {
	f.wg.Wait()

	var closeErr error
	if f.durableStore != nil {
		if err := f.durableStore.Close(); err != nil {
			closeErr = fmt.Errorf("close durable store: %w", err)
		}
	}
	if err := f.fileStore.Close(); err != nil && closeErr == nil {
		closeErr = fmt.Errorf("close file store: %w", err)
	}
	return closeErr
}

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/mod/semver"
)

// DefaultAppVersion is stamped on exports when no valid semantic version
// was configured.
const DefaultAppVersion = "v2.0.0"

// ExportVersion identifies the export envelope format.
const ExportVersion = 1

// Export metadata keys. They are stripped on import.
const (
	metaExportedAt    = "_exportedAt"
	metaAppVersion    = "_appVersion"
	metaExportVersion = "_exportVersion"
)

// ImportReason classifies an import failure.
type ImportReason string

const (
	ReasonInvalidJSON  ImportReason = "invalid_json"
	ReasonInvalidShape ImportReason = "invalid_shape"
	ReasonWriteFailed  ImportReason = "write_failed"
)

// ImportError is returned when a backup cannot be imported. The stored
// state is unchanged.
type ImportError struct {
	Reason ImportReason
	Err    error
}

func (e *ImportError) Error() string {
	switch e.Reason {
	case ReasonInvalidJSON:
		return fmt.Sprintf("backup is not valid JSON: %v", e.Err)
	case ReasonInvalidShape:
		return fmt.Sprintf("backup is missing required data: %v", e.Err)
	default:
		return fmt.Sprintf("failed to save imported data: %v", e.Err)
	}
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// ExportJSON returns the current state as an indented JSON backup with
// export metadata.
func (s *Store) ExportJSON(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	doc := toMap(s.loadLocked(ctx))
	now := s.clock.Now()
	version := s.exportAppVersion()
	s.mu.Unlock()

	doc[metaExportedAt] = now
	doc[metaAppVersion] = version
	doc[metaExportVersion] = ExportVersion
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

func (s *Store) exportAppVersion() string {
	if semver.IsValid(s.appVersion) {
		return s.appVersion
	}
	return DefaultAppVersion
}

// ImportJSON validates a backup, fills missing fields from defaults and
// replaces the stored state with it in one write. On failure it returns
// an *ImportError and leaves the state untouched.
func (s *Store) ImportJSON(ctx context.Context, data []byte) (AppState, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		s.logger.Warn("import rejected", "reason", ReasonInvalidJSON, "error", err)
		return AppState{}, &ImportError{Reason: ReasonInvalidJSON, Err: err}
	}
	if err := validateBackup(parsed); err != nil {
		s.logger.Warn("import rejected", "reason", ReasonInvalidShape, "error", err)
		return AppState{}, &ImportError{Reason: ReasonInvalidShape, Err: err}
	}
	doc := parsed.(map[string]any)

	if v, ok := doc[metaAppVersion].(string); ok && semver.IsValid(v) {
		if semver.Compare(semver.Major(v), semver.Major(s.exportAppVersion())) > 0 {
			s.logger.Warn("backup was written by a newer version", "backupVersion", v, "appVersion", s.exportAppVersion())
		}
	}
	for _, k := range []string{metaExportedAt, metaAppVersion, metaExportVersion} {
		delete(doc, k)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	st := decode(doc, now, s.loc, s.logger)
	st.UpdatedAt = now

	if err := s.writeLocked(ctx, &st); err != nil {
		s.logger.Warn("import rejected", "reason", ReasonWriteFailed, "error", err)
		return AppState{}, &ImportError{Reason: ReasonWriteFailed, Err: err}
	}
	s.cancelLocked()
	s.cache = &st
	s.degraded = false
	return st.Clone(), nil
}

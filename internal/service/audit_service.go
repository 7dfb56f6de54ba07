package service

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/metrics"
	"github.com/simple-lms-api/internal/models"
	"github.com/simple-lms-api/internal/store"
)

// auditService is the concrete implementation of AuditService
type auditService struct {
	store   *store.Store
	now     func() time.Time
	metrics metrics.Recorder
	log     zerolog.Logger
}

// newAuditService creates a new AuditService
func newAuditService(st *store.Store, now func() time.Time, recorder metrics.Recorder, log zerolog.Logger) *auditService {
	return &auditService{
		store:   st,
		now:     now,
		metrics: recorder,
		log:     log.With().Str("service", "audit").Logger(),
	}
}

// Record appends an entry to the front of the log, dropping the oldest
// entries beyond models.AuditLogLimit
func (s *auditService) Record(activity models.ActivityType, details string) {
	s.store.Update(func(tx *store.Tx) {
		s.record(tx, activity, details)
	})
}

// record appends an entry within an ongoing update
func (s *auditService) record(tx *store.Tx, activity models.ActivityType, details string) {
	entry := &models.AuditLogEntry{
		ID:        "log-" + uuid.New().String(),
		Timestamp: s.now(),
		Activity:  activity,
		Details:   details,
	}
	tx.PrependAudit(entry, models.AuditLogLimit)
	s.metrics.RecordActivity(activity)

	s.log.Info().
		Str("activity", string(activity)).
		Str("details", details).
		Msg("Activity recorded")
}

// Entries returns the retained entries, newest first
func (s *auditService) Entries() []*models.AuditLogEntry {
	return slices.Clone(s.store.Snapshot().AuditLog)
}

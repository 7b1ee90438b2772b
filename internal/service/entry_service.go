package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/dreis/minhasfinancas-api/internal/events"
	"github.com/dreis/minhasfinancas-api/internal/platform/logger"
	"github.com/dreis/minhasfinancas-api/internal/store"
	"github.com/google/uuid"
)

const entryServiceName = "entry"

// EntryService validates, persists and queries financial entries.
type EntryService interface {
	// Save validates a new entry, forces its status to PENDING and persists it.
	Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)

	// Update re-validates and persists an existing entry. The status is kept as given.
	Update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)

	// Delete removes an existing entry. No field validation is applied.
	Delete(ctx context.Context, entry *domain.Entry) error

	// Search returns the entries matching the query-by-example filter.
	Search(ctx context.Context, filter store.EntryFilter) ([]*domain.Entry, error)

	// ChangeStatus assigns status and persists the entry through Update.
	ChangeStatus(ctx context.Context, entry *domain.Entry, status domain.EntryStatus) (*domain.Entry, error)

	// Validate applies the entry business rules without side effects.
	Validate(entry *domain.Entry) error

	// GetByID loads a single entry.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
}

type entryServiceImpl struct {
	entryStore store.EntryStore
	txRunner   store.TxRunner
	emitter    events.EventEmitter
	logger     *slog.Logger
}

// NewEntryService creates a new EntryService. A nil emitter disables events.
func NewEntryService(
	entryStore store.EntryStore,
	txRunner store.TxRunner,
	emitter events.EventEmitter,
	logger *slog.Logger,
) EntryService {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &entryServiceImpl{
		entryStore: entryStore,
		txRunner:   txRunner,
		emitter:    emitter,
		logger:     logger.With("component", "entry_service"),
	}
}

// Validate applies the ordered entry rules.
func (s *entryServiceImpl) Validate(entry *domain.Entry) error {
	return entry.Validate()
}

// Save persists a new entry with PENDING status.
func (s *entryServiceImpl) Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Debug("entry rejected by validation", "error", err, "user_id", entry.UserID)
		return nil, err
	}

	entry.Status = domain.EntryStatusPending

	saved, err := s.persist(ctx, entry)
	if err != nil {
		log.Error("failed to save entry", "error", err, "user_id", entry.UserID)
		return nil, NewServiceError(entryServiceName, "save", err)
	}

	log.Info("entry saved", "entry_id", saved.ID, "user_id", saved.UserID)
	s.emit(ctx, events.EntryCreated, saved)
	return saved, nil
}

// Update persists changes to an existing entry.
func (s *entryServiceImpl) Update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	return s.update(ctx, entry, events.EntryUpdated)
}

func (s *entryServiceImpl) update(
	ctx context.Context,
	entry *domain.Entry,
	eventType string,
) (*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !entry.HasIdentity() {
		return nil, domain.ErrMissingIdentity
	}

	if err := entry.Validate(); err != nil {
		log.Debug("entry update rejected by validation", "error", err, "entry_id", entry.ID)
		return nil, err
	}

	saved, err := s.persist(ctx, entry)
	if err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			log.Debug("entry to update not found", "entry_id", entry.ID)
		} else {
			log.Error("failed to update entry", "error", err, "entry_id", entry.ID)
		}
		return nil, NewServiceError(entryServiceName, "update", err)
	}

	log.Info("entry updated", "entry_id", saved.ID, "status", saved.Status)
	s.emit(ctx, eventType, saved)
	return saved, nil
}

// persist runs the store write inside a transaction.
func (s *entryServiceImpl) persist(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	var saved *domain.Entry
	err := s.txRunner.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		saved, err = s.entryStore.WithTx(tx).Save(ctx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Delete removes an existing entry.
func (s *entryServiceImpl) Delete(ctx context.Context, entry *domain.Entry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !entry.HasIdentity() {
		return domain.ErrMissingIdentity
	}

	err := s.txRunner.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.entryStore.WithTx(tx).Delete(ctx, entry.ID)
	})
	if err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			log.Debug("entry to delete not found", "entry_id", entry.ID)
		} else {
			log.Error("failed to delete entry", "error", err, "entry_id", entry.ID)
		}
		return NewServiceError(entryServiceName, "delete", err)
	}

	log.Info("entry deleted", "entry_id", entry.ID)
	s.emit(ctx, events.EntryDeleted, entry)
	return nil
}

// Search returns entries matching the filter.
func (s *entryServiceImpl) Search(ctx context.Context, filter store.EntryFilter) ([]*domain.Entry, error) {
	entries, err := s.entryStore.FindByExample(ctx, filter)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to search entries",
			"error", err,
			"user_id", filter.UserID)
		return nil, NewServiceError(entryServiceName, "search", err)
	}
	return entries, nil
}

// ChangeStatus assigns a new status and re-runs the full update path.
func (s *entryServiceImpl) ChangeStatus(
	ctx context.Context,
	entry *domain.Entry,
	status domain.EntryStatus,
) (*domain.Entry, error) {
	if !status.IsValid() {
		return nil, domain.NewBusinessRuleError(domain.MsgInvalidStatus)
	}

	entry.Status = status
	return s.update(ctx, entry, events.EntryStatusChanged)
}

// GetByID loads a single entry.
func (s *entryServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	entry, err := s.entryStore.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrEntryNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to load entry",
				"error", err,
				"entry_id", id)
		}
		return nil, NewServiceError(entryServiceName, "get", err)
	}
	return entry, nil
}

// emit publishes a committed change. Failures are logged only.
func (s *entryServiceImpl) emit(ctx context.Context, eventType string, entry *domain.Entry) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewEntryEvent(eventType, entry)
	if err != nil {
		log.Warn("failed to build entry event", "error", err, "event_type", eventType)
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit entry event",
			"error", err,
			"event_type", eventType,
			"entry_id", entry.ID)
	}
}

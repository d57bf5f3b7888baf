// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Khalitov

package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dkhalitov/go-cipher-ledger/models"
)

// MemoryStore is the in-memory implementation of all repository interfaces,
// used by tests and DSN-less development runs. A single RWMutex serializes
// every mutating operation, reproducing the strictly-serialized state
// machine the core assumes; reads take the shared lock.
type MemoryStore struct {
	mu sync.RWMutex

	records  []models.EncryptedRecord // index i holds record id i+1
	revealed []models.RevealedRecord

	pending map[string]models.PendingDecryption

	counts     map[string]models.LabelCount // keyed by label
	hashIndex  map[string]string            // label hash -> label
	labelOrder []string                     // labels in first-seen order

	users      map[string]models.User // keyed by login
	nextUserID int64
}

// NewMemoryStore constructs an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pending:    make(map[string]models.PendingDecryption),
		counts:     make(map[string]models.LabelCount),
		hashIndex:  make(map[string]string),
		users:      make(map[string]models.User),
		nextUserID: 1,
	}
}

// SaveRecord implements [RecordRepository]. Identifiers are assigned densely
// starting at 1 with no gaps or reuse.
func (m *MemoryStore) SaveRecord(_ context.Context, record *models.EncryptedRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record.ID = int64(len(m.records)) + 1
	record.CreatedAt = time.Now()

	m.records = append(m.records, *record)
	m.revealed = append(m.revealed, models.RevealedRecord{RecordID: record.ID})

	return nil
}

// GetRecord implements [RecordRepository].
func (m *MemoryStore) GetRecord(_ context.Context, id int64) (models.EncryptedRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if id < 1 || id > int64(len(m.records)) {
		return models.EncryptedRecord{}, ErrRecordNotFound
	}

	return m.records[id-1], nil
}

// GetRevealed implements [RecordRepository].
func (m *MemoryStore) GetRevealed(_ context.Context, id int64) (models.RevealedRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if id < 1 || id > int64(len(m.revealed)) {
		return models.RevealedRecord{}, ErrRecordNotFound
	}

	return m.revealed[id-1], nil
}

// ListRecords implements [RecordRepository].
func (m *MemoryStore) ListRecords(_ context.Context, filter RecordFilter) ([]models.RecordListItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]models.RecordListItem, 0, len(m.records))
	for i, record := range m.records {
		if record.OwnerID != filter.OwnerID {
			continue
		}
		if len(filter.IDs) > 0 && !slices.Contains(filter.IDs, record.ID) {
			continue
		}

		projection := m.revealed[i]
		if filter.RevealedOnly && !projection.Revealed {
			continue
		}

		items = append(items, models.RecordListItem{
			RevealedRecord: projection,
			CreatedAt:      record.CreatedAt,
		})
	}

	return items, nil
}

// CommitReveal implements [RecordRepository]. All effects of an accepted
// callback are applied under one critical section, so a rejected commit
// leaves no partial writes.
func (m *MemoryStore) CommitReveal(_ context.Context, commit models.RevealCommit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pending, ok := m.pending[commit.RequestID]
	if !ok || pending.Status != models.PendingOpen {
		return ErrPendingNotFound
	}

	id := commit.Revealed.RecordID
	if id < 1 || id > int64(len(m.revealed)) {
		return ErrRecordNotFound
	}
	if m.revealed[id-1].Revealed {
		return ErrAlreadyRevealed
	}

	pending.Status = models.PendingDone
	m.pending[commit.RequestID] = pending

	projection := commit.Revealed
	projection.RevealedAt = time.Now()
	m.revealed[id-1] = projection

	entry, seen := m.counts[commit.Label]
	if !seen {
		entry = models.LabelCount{
			Label:     commit.Label,
			LabelHash: commit.LabelHash,
			Position:  len(m.labelOrder),
		}
		m.hashIndex[commit.LabelHash] = commit.Label
		m.labelOrder = append(m.labelOrder, commit.Label)
	}
	entry.Count = commit.Count
	m.counts[commit.Label] = entry

	return nil
}

// SavePending implements [PendingRepository].
func (m *MemoryStore) SavePending(_ context.Context, pending models.PendingDecryption) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending[pending.RequestID] = pending
	return nil
}

// GetPending implements [PendingRepository].
func (m *MemoryStore) GetPending(_ context.Context, requestID string) (models.PendingDecryption, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pending, ok := m.pending[requestID]
	if !ok {
		return models.PendingDecryption{}, ErrPendingNotFound
	}

	return pending, nil
}

// MarkPending implements [PendingRepository].
func (m *MemoryStore) MarkPending(_ context.Context, requestID string, status models.PendingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pending, ok := m.pending[requestID]
	if !ok {
		return ErrPendingNotFound
	}
	if pending.Status != models.PendingOpen {
		return ErrPendingNotOpen
	}

	pending.Status = status
	m.pending[requestID] = pending

	return nil
}

// ListOpenPending implements [PendingRepository]. Entries come back oldest
// first.
func (m *MemoryStore) ListOpenPending(_ context.Context) ([]models.PendingDecryption, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var open []models.PendingDecryption
	for _, pending := range m.pending {
		if pending.Status == models.PendingOpen {
			open = append(open, pending)
		}
	}

	slices.SortFunc(open, func(a, b models.PendingDecryption) int {
		return a.IssuedAt.Compare(b.IssuedAt)
	})

	return open, nil
}

// GetLabelCount implements [LabelRepository].
func (m *MemoryStore) GetLabelCount(_ context.Context, label string) (models.LabelCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.counts[label]
	if !ok {
		return models.LabelCount{}, ErrLabelNotFound
	}

	return entry, nil
}

// GetLabelByHash implements [LabelRepository].
func (m *MemoryStore) GetLabelByHash(_ context.Context, labelHash string) (models.LabelCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	label, ok := m.hashIndex[labelHash]
	if !ok {
		return models.LabelCount{}, ErrLabelNotFound
	}

	return m.counts[label], nil
}

// ListLabels implements [LabelRepository].
func (m *MemoryStore) ListLabels(_ context.Context) ([]models.LabelCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	labels := make([]models.LabelCount, 0, len(m.labelOrder))
	for _, label := range m.labelOrder {
		labels = append(labels, m.counts[label])
	}

	return labels, nil
}

// CreateUser implements [UserRepository].
func (m *MemoryStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.Login]; exists {
		return models.User{}, ErrLoginAlreadyExists
	}

	user.UserID = m.nextUserID
	user.CreatedAt = time.Now()
	m.nextUserID++

	m.users[user.Login] = user

	return user, nil
}

// FindUserByLogin implements [UserRepository].
func (m *MemoryStore) FindUserByLogin(_ context.Context, login string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[login]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	return user, nil
}

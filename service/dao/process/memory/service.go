// Package memory provides the in-memory process table: an arena of
// process records keyed by pid, preserving creation order. Records stay
// in the table after termination so that statistics keep covering them;
// they are dropped only at engine teardown.
package memory

import (
	"context"
	"sync"

	"github.com/viant/quantor/model/proc"
	"github.com/viant/quantor/service/dao"
	"github.com/viant/quantor/service/dao/criteria"
)

// Service implements a thread-safe process table. List returns records
// in creation order, which the reporting surfaces rely on for stable
// table rendering.
type Service struct {
	byPID map[int]*proc.Process
	order []int
	mux   sync.RWMutex
}

var _ dao.Service[int, proc.Process] = (*Service)(nil)

// New creates an empty process table.
func New() *Service {
	return &Service{byPID: map[int]*proc.Process{}}
}

// Save inserts a record or replaces the stored record's content when the
// pid already exists. Creation order is recorded on first insert.
func (s *Service) Save(_ context.Context, p *proc.Process) error {
	if p == nil {
		return dao.ErrNilEntity
	}
	if p.PID <= 0 {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if existing, ok := s.byPID[p.PID]; ok {
		*existing = *p
		return nil
	}
	s.byPID[p.PID] = p
	s.order = append(s.order, p.PID)
	return nil
}

// Load returns the live record for pid.
func (s *Service) Load(_ context.Context, pid int) (*proc.Process, error) {
	if pid <= 0 {
		return nil, dao.ErrInvalidID
	}

	s.mux.RLock()
	p, ok := s.byPID[pid]
	s.mux.RUnlock()

	if !ok {
		return nil, dao.ErrNotFound
	}
	return p, nil
}

// Delete removes a record. Only engine teardown uses it; a TERMINATED
// record is otherwise retained for statistics.
func (s *Service) Delete(_ context.Context, pid int) error {
	if pid <= 0 {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.byPID[pid]; !ok {
		return dao.ErrNotFound
	}
	delete(s.byPID, pid)
	for i, id := range s.order {
		if id == pid {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns records in creation order, optionally filtered.
func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*proc.Process, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	out := make([]*proc.Process, 0, len(s.order))
	for _, pid := range s.order {
		p := s.byPID[pid]
		if !criteria.FilterByState(p.State, parameters) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Len returns the number of stored records.
func (s *Service) Len() int {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return len(s.order)
}

package ledger

import "sync"

// MemoryStore is a process-local Store. Ledger entries are ephemeral
// session state, so losing them on restart is acceptable; concurrent
// writers for one session are last-write-wins.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Get(sessionID, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.sessions[sessionID]
	if !ok {
		return nil, false, nil
	}
	value, ok := values[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

func (s *MemoryStore) Set(sessionID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.sessions[sessionID]
	if !ok {
		values = make(map[string][]byte)
		s.sessions[sessionID] = values
	}
	values[key] = value
	return nil
}

func (s *MemoryStore) Delete(sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if values, ok := s.sessions[sessionID]; ok {
		delete(values, key)
		if len(values) == 0 {
			delete(s.sessions, sessionID)
		}
	}
	return nil
}

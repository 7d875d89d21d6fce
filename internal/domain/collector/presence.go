package collector

import "sync"

// PresenceSet tracks which members are currently in a voice channel, per
// community. It is process memory rebuilt from gateway events; storage never
// sees it. The voice collector re-validates against the platform before
// crediting, so a stale entry costs nothing.
type PresenceSet struct {
	mutex   sync.Mutex
	members map[string]map[string]struct{}
}

func NewPresenceSet() *PresenceSet {
	return &PresenceSet{members: make(map[string]map[string]struct{})}
}

func (s *PresenceSet) Add(communityID, userID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.members[communityID] == nil {
		s.members[communityID] = make(map[string]struct{})
	}

	s.members[communityID][userID] = struct{}{}
}

func (s *PresenceSet) Remove(communityID, userID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.members[communityID], userID)
	if len(s.members[communityID]) == 0 {
		delete(s.members, communityID)
	}
}

func (s *PresenceSet) Contains(communityID, userID string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, ok := s.members[communityID][userID]
	return ok
}

// Snapshot copies the set so the tick loop can iterate without holding the
// lock across store and platform calls.
func (s *PresenceSet) Snapshot() map[string][]string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	snapshot := make(map[string][]string, len(s.members))
	for communityID, users := range s.members {
		for userID := range users {
			snapshot[communityID] = append(snapshot[communityID], userID)
		}
	}

	return snapshot
}

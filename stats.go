package duet

import "sync"

// StatKey names one SessionStats counter.
type StatKey string

// Standard counter keys. All duet counters use the "duet:" prefix so
// user-defined keys cannot collide.
const (
	// KeyRounds counts completed feedback rounds.
	KeyRounds StatKey = "duet:rounds"

	// KeyWriterCalls and KeyCollaboratorCalls count generator calls per
	// role, including repair regenerations.
	KeyWriterCalls       StatKey = "duet:writer_calls"
	KeyCollaboratorCalls StatKey = "duet:collaborator_calls"

	// KeyRepairRetries counts regenerations forced by malformed
	// Collaborator output (attempts beyond the first).
	KeyRepairRetries StatKey = "duet:repair_retries"

	// KeyInputTokens and KeyOutputTokens accumulate whatever usage the
	// providers reported. Placeholders: zero when a provider reports
	// nothing, and never used for accounting.
	KeyInputTokens  StatKey = "duet:input_tokens"
	KeyOutputTokens StatKey = "duet:output_tokens"
)

// SessionStats is a session's counter set. The loop is sequential, but
// hooks and the caller may read stats while the session runs, so access is
// guarded.
type SessionStats struct {
	mu       sync.RWMutex
	counters map[StatKey]int64
}

// NewSessionStats creates an empty counter set.
func NewSessionStats() *SessionStats {
	return &SessionStats{counters: map[StatKey]int64{}}
}

// Incr adds delta to the counter for key.
func (s *SessionStats) Incr(key StatKey, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key] += delta
}

// Get returns the current value for key (zero when never incremented).
func (s *SessionStats) Get(key StatKey) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key]
}

// Snapshot returns a copy of all counters.
func (s *SessionStats) Snapshot() map[StatKey]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[StatKey]int64, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}

// AddUsage folds one generation's normalized usage into the token counters.
// Nil info is fine; it means the provider reported nothing.
func (s *SessionStats) AddUsage(info *GenerationInfo) {
	if info == nil {
		return
	}
	if info.InputTokens > 0 {
		s.Incr(KeyInputTokens, int64(info.InputTokens))
	}
	if info.OutputTokens > 0 {
		s.Incr(KeyOutputTokens, int64(info.OutputTokens))
	}
}

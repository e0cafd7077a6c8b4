package serializer

import (
	"github.com/google/uuid"

	"github.com/tessera-io/tessera/internal/record"
)

// scope is the transient state of one decomposition call. It is created
// fresh per call and discarded at the end; engines never share it.
//
// Two parallel stacks track the open ancestor chain:
//
//   - flags: one detach flag per nesting level, recording whether the
//     level's parent asked for it to be detached. The flag for a level
//     is pushed by the parent before recursing and popped by the level
//     itself after its hash is known.
//   - levels: one accumulator per nesting level, collecting the
//     detached descendants seen anywhere beneath that level. Levels are
//     addressed by stack position; an accumulator is read exactly once,
//     when its level closes, so positions can be reused by siblings.
type scope struct {
	flags  []bool
	levels []map[string]int

	// closures indexes finished closure manifests by record id.
	closures map[string]record.Closure

	// callID tags diagnostics emitted during this call.
	callID string

	failures []FlattenFailure
}

func newScope() *scope {
	return &scope{
		closures: make(map[string]record.Closure),
		callID:   uuid.NewString(),
	}
}

func (s *scope) pushFlag(detach bool) {
	s.flags = append(s.flags, detach)
}

func (s *scope) popFlag() bool {
	detach := s.flags[len(s.flags)-1]
	s.flags = s.flags[:len(s.flags)-1]
	return detach
}

func (s *scope) pushLevel() {
	s.levels = append(s.levels, nil)
}

func (s *scope) popLevel() {
	s.levels = s.levels[:len(s.levels)-1]
}

// noteDetached records a freshly detached record for every open
// ancestor. The recorded depth is the current height of the flag stack:
// the number of detach boundaries between the root and the new record.
// For each ancestor the minimum across all paths wins.
func (s *scope) noteDetached(id string) {
	depth := len(s.flags)
	for i := range s.levels {
		if s.levels[i] == nil {
			s.levels[i] = make(map[string]int)
		}
		if existing, ok := s.levels[i][id]; !ok || existing > depth {
			s.levels[i][id] = depth
		}
	}
}

// closeLevel builds the closure manifest for the level being closed, or
// returns nil if no descendant of it was detached. Must be called after
// the level's own flag has been popped: relative depth is the recorded
// absolute depth minus the remaining flag stack height.
func (s *scope) closeLevel() record.Closure {
	accumulated := s.levels[len(s.levels)-1]
	if len(accumulated) == 0 {
		return nil
	}
	closure := make(record.Closure, len(accumulated))
	base := len(s.flags)
	for id, depth := range accumulated {
		closure[id] = depth - base
	}
	return closure
}

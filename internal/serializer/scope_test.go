package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-io/tessera/internal/record"
)

func TestScopeRecordsMinimumDepthPerAncestor(t *testing.T) {
	s := newScope()

	// Simulate root -> child, with a detachment two boundaries deep and
	// the same hash later seen one boundary deep.
	s.pushFlag(true)
	s.pushLevel() // root

	s.pushFlag(true)
	s.pushLevel() // child

	s.pushFlag(true) // grandchild being detached
	s.popFlag()
	s.noteDetached("aa") // depth 2: root + child flags remain

	// Child closes: its own flag comes off before the closure is built.
	s.popFlag()
	closure := s.closeLevel()
	s.popLevel()
	require.NotNil(t, closure)
	assert.Equal(t, record.Closure{"aa": 1}, closure)

	// Root sees the same hash again directly beneath it.
	s.noteDetached("aa") // depth 1 < recorded 2

	s.popFlag()
	rootClosure := s.closeLevel()
	s.popLevel()
	assert.Equal(t, record.Closure{"aa": 1}, rootClosure, "minimum depth wins")

	assert.Empty(t, s.flags)
	assert.Empty(t, s.levels)
}

func TestScopeCloseLevelWithoutDetachments(t *testing.T) {
	s := newScope()
	s.pushFlag(true)
	s.pushLevel()
	s.popFlag()
	assert.Nil(t, s.closeLevel(), "no detached descendants means no closure")
	s.popLevel()
}

func TestScopeLevelReuseAcrossSiblings(t *testing.T) {
	s := newScope()
	s.pushFlag(true)
	s.pushLevel() // root

	// First sibling detaches something, closes, pops.
	s.pushFlag(false)
	s.pushLevel()
	s.noteDetached("aa")
	s.popFlag()
	first := s.closeLevel()
	s.popLevel()
	require.NotNil(t, first)

	// Second sibling at the same stack position starts clean.
	s.pushFlag(false)
	s.pushLevel()
	s.popFlag()
	assert.Nil(t, s.closeLevel(), "sibling levels must not inherit accumulated entries")
	s.popLevel()
}

func TestScopeCallIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, newScope().callID, newScope().callID)
}

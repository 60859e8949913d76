package memory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsl-agent/internal/domain"
)

var _ domain.SessionStore = (*Store)(nil)

func TestStore_CreateGetDestroy(t *testing.T) {
	s := NewStore()

	sess := s.Create()
	_, err := uuid.Parse(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, sess.History.Len())

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	require.NoError(t, s.Destroy(sess.ID))
	_, err = s.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, s.Destroy(sess.ID), domain.ErrSessionNotFound)
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	s := NewStore()
	a, b := s.Create(), s.Create()

	a.History.Append(domain.Turn{Role: domain.RoleUser, Content: "só em a"})

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 1, a.History.Len())
	assert.Equal(t, 0, b.History.Len())
	assert.Equal(t, 2, s.Len())
}

func TestStore_OpenReusesSession(t *testing.T) {
	s := NewStore()

	first := s.Open("telegram:42")
	first.History.Append(domain.Turn{Role: domain.RoleUser, Content: "oi"})
	second := s.Open("telegram:42")

	assert.Same(t, first, second)
	assert.Equal(t, 1, second.History.Len())

	require.NoError(t, s.Destroy("telegram:42"))
	fresh := s.Open("telegram:42")
	assert.NotSame(t, first, fresh)
	assert.Equal(t, 0, fresh.History.Len())
}

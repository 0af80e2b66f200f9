package conversation

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"induk-agents/internal/domain"
	"induk-agents/internal/metrics"
)

func newFactory() Factory {
	return func(id string) *Conversation {
		return New(id, routeTo(domain.AgentAppointments, "r"), &fakeResponder{reply: "ok"})
	}
}

func TestStoreCreateGet(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	s, err := NewStore(2, newFactory(), m)
	require.NoError(t, err)

	a := s.Create()
	b := s.Create()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActiveConversations))

	got, err := s.Get(a.ID())
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	s, err := NewStore(2, newFactory(), nil)
	require.NoError(t, err)

	a := s.Create()
	b := s.Create()
	_, err = s.Get(a.ID())
	require.NoError(t, err)
	s.Create()

	_, err = s.Get(b.ID())
	assert.ErrorIs(t, err, ErrConversationNotFound)
	_, err = s.Get(a.ID())
	assert.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestNewStoreValidation(t *testing.T) {
	_, err := NewStore(2, nil, nil)
	assert.Error(t, err)

	_, err = NewStore(0, newFactory(), nil)
	assert.Error(t, err)
}

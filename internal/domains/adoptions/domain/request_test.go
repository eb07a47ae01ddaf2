package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestIsPending(t *testing.T) {
	req, err := NewRequest("r1", "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, req.Status)
	assert.True(t, req.OwnedBy("u1"))
	assert.False(t, req.OwnedBy("u2"))
	assert.False(t, req.OwnedBy(""))
}

func TestNewRequestRequiresReferences(t *testing.T) {
	_, err := NewRequest("r1", "", "p1")
	assert.ErrorIs(t, err, ErrMissingUser)
	_, err = NewRequest("r1", "u1", "")
	assert.ErrorIs(t, err, ErrInvalidPetID)
}

func TestResolveIsOneShot(t *testing.T) {
	for _, first := range []Status{StatusApproved, StatusRejected} {
		req, err := NewRequest("r1", "u1", "p1")
		require.NoError(t, err)

		require.NoError(t, req.Resolve(first))
		assert.Equal(t, first, req.Status)

		assert.ErrorIs(t, req.Approve(), ErrNotPending)
		assert.ErrorIs(t, req.Reject(), ErrNotPending)
		assert.Equal(t, first, req.Status)
	}
}

func TestResolveRejectsNonTerminalTarget(t *testing.T) {
	req, err := NewRequest("r1", "u1", "p1")
	require.NoError(t, err)
	assert.ErrorIs(t, req.Resolve(StatusPending), ErrInvalidDecision)
	assert.ErrorIs(t, req.Resolve("cancelled"), ErrInvalidDecision)
	assert.Equal(t, StatusPending, req.Status)
}

func TestResolutionEvent(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	req := &Request{ID: "r1", UserID: "u1", PetID: "p1", Status: StatusApproved}
	event := ResolutionEvent(req, at)
	assert.Equal(t, "adoptions.request.approved", event.EventName())
	assert.Equal(t, at, event.OccurredAt())

	req.Status = StatusRejected
	assert.Equal(t, "adoptions.request.rejected", ResolutionEvent(req, at).EventName())
}

package interlock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequester(t *testing.T) *Requester {
	t.Helper()
	table, err := DefaultCodeTable()
	require.NoError(t, err)
	now := t0
	r, err := NewRequesterFromTable(table, WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
	require.NoError(t, err)
	return r
}

func lastStatus(t *testing.T, r *Requester, code string) Status {
	t.Helper()
	e, err := r.Error(code)
	require.NoError(t, err)
	return e.LastStatus()
}

func TestRequester_RoutesByPrefix(t *testing.T) {
	r := newTestRequester(t)

	_, err := r.RaiseError("X-1")
	assert.ErrorIs(t, err, ErrUnknownDomain)
	_, err = r.RaiseError("S-9999")
	assert.ErrorIs(t, err, ErrUnknownCode)

	handled, err := r.RaiseError("A-3002")
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, 1, r.Controller(DomainAlarm).Counter())
	assert.Zero(t, r.Controller(DomainSecurity).Counter())
}

func TestRequester_EstopAggregate(t *testing.T) {
	r := newTestRequester(t)

	_, err := r.RaiseError("S-1001-0")
	require.NoError(t, err)
	assert.True(t, r.HasAnyErrors())
	assert.Equal(t, Raised, lastStatus(t, r, "S-1001"))

	_, err = r.RaiseError("S-1001-1")
	require.NoError(t, err)

	_, err = r.UnraiseError("S-1001-0")
	require.NoError(t, err)
	assert.Equal(t, Unraised, lastStatus(t, r, "S-1001-0"))
	assert.Equal(t, Raised, lastStatus(t, r, "S-1001"))
	assert.True(t, r.HasAnyErrors())

	_, err = r.ResetError("S-1001")
	assert.ErrorIs(t, err, ErrIllegalTransition)

	_, err = r.UnraiseError("S-1001-1")
	require.NoError(t, err)
	assert.Equal(t, Unraised, lastStatus(t, r, "S-1001"))
	assert.False(t, r.HasAnyErrors())
	assert.False(t, r.HasAllErrorsReset())

	handled, err := r.ResetError("S-1001")
	require.NoError(t, err)
	assert.True(t, handled)
	for _, code := range []string{"S-1001", "S-1001-0", "S-1001-1"} {
		assert.Equal(t, Reset, lastStatus(t, r, code), code)
	}
	assert.True(t, r.HasAllErrorsReset())
	assert.Zero(t, r.Controller(DomainSecurity).Counter())
}

func TestRequester_EstopPressedAgainBeforeReset(t *testing.T) {
	r := newTestRequester(t)
	_, err := r.RaiseError("S-1001-0")
	require.NoError(t, err)
	_, err = r.UnraiseError("S-1001-0")
	require.NoError(t, err)

	handled, err := r.RaiseError("S-1001-0")
	require.NoError(t, err)
	assert.True(t, handled)
	assert.True(t, r.HasAnyErrors())
	assert.Equal(t, Raised, lastStatus(t, r, "S-1001"))

	reset, err := r.ResetAll()
	require.NoError(t, err)
	assert.Empty(t, reset)
	assert.False(t, r.CanRun())
	assert.Equal(t, 2, r.Controller(DomainSecurity).Counter())
}

func TestRequester_OtherEstopRaisesUnraisedAggregate(t *testing.T) {
	r := newTestRequester(t)
	_, err := r.RaiseError("S-1001-0")
	require.NoError(t, err)
	_, err = r.UnraiseError("S-1001-0")
	require.NoError(t, err)
	require.Equal(t, Unraised, lastStatus(t, r, "S-1001"))

	_, err = r.RaiseError("S-1001-1")
	require.NoError(t, err)

	agg, err := r.Error("S-1001")
	require.NoError(t, err)
	assert.True(t, agg.Active)
	assert.Equal(t, Raised, agg.LastStatus())

	_, err = r.UnraiseError("S-1001-1")
	require.NoError(t, err)
	reset, err := r.ResetAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"S-1001"}, reset)
	assert.Equal(t, Reset, lastStatus(t, r, "S-1001-1"))
	assert.True(t, r.CanRun())
	assert.Zero(t, r.Controller(DomainSecurity).Counter())
}

func TestRequester_UnitResetWhileRaisedRefused(t *testing.T) {
	r := newTestRequester(t)
	_, err := r.RaiseError("S-1001-2")
	require.NoError(t, err)
	_, err = r.ResetError("S-1001-2")
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestRequester_ResetAllSkipsRaised(t *testing.T) {
	r := newTestRequester(t)
	_, _ = r.RaiseError("S-1002")
	_, _ = r.UnraiseError("S-1002")
	_, _ = r.RaiseError("S-1001-0")
	_, _ = r.UnraiseError("S-1001-0")
	_, _ = r.RaiseError("A-3002")

	reset, err := r.ResetAll()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"S-1001", "S-1002"}, reset)
	assert.Equal(t, Reset, lastStatus(t, r, "S-1001-0"))
	assert.Equal(t, Raised, lastStatus(t, r, "A-3002"))
	assert.True(t, r.HasAllErrorsReset())
	assert.False(t, r.HasAlarmErrorsReset())
}

// Ошибки робота не влияют на HasAllErrorsReset, только на HasAlarmErrorsReset.
func TestRequester_GatingAsymmetry(t *testing.T) {
	r := newTestRequester(t)
	_, err := r.RaiseError("R-2001")
	require.NoError(t, err)
	_, err = r.UnraiseError("R-2001")
	require.NoError(t, err)

	assert.False(t, r.HasAnyErrors())
	assert.True(t, r.HasAllErrorsReset())
	assert.False(t, r.HasAlarmErrorsReset())
	assert.False(t, r.CanRun())

	_, err = r.ResetError("R-2001")
	require.NoError(t, err)
	assert.True(t, r.CanRun())
}

func TestRequester_OnEventSeesAllDomains(t *testing.T) {
	r := newTestRequester(t)
	var codes []string
	r.OnEvent(func(ev Event) { codes = append(codes, ev.Code+":"+ev.Status.String()) })

	_, _ = r.RaiseError("R-2003")
	_, _ = r.RaiseError("S-1001-0")

	assert.Equal(t, []string{"R-2003:Raised", "S-1001-0:Raised", "S-1001:Raised"}, codes)
}

func TestRequester_Validate(t *testing.T) {
	r := newTestRequester(t)
	assert.NoError(t, r.Validate("S-1001-0", "A-3001"))
	assert.ErrorIs(t, r.Validate("S-1001-9"), ErrUnknownCode)
	assert.ErrorIs(t, r.Validate("Q-1"), ErrUnknownDomain)
}

func TestRequester_TimestampsFromClock(t *testing.T) {
	r := newTestRequester(t)
	_, _ = r.RaiseError("A-3003")
	e, err := r.Error("A-3003")
	require.NoError(t, err)
	require.Len(t, e.Occurrences, 1)
	assert.Equal(t, t0.Add(time.Second), e.Occurrences[0].Timestamp)
}

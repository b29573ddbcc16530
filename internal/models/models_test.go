package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Yes Flag `json:"yes"`
		No  Flag `json:"no"`
	}{Yes: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"yes":1,"no":0}`, string(out))

	tests := []struct {
		in      string
		want    Flag
		wantErr bool
	}{
		{in: `true`, want: true},
		{in: `1`, want: true},
		{in: `false`, want: false},
		{in: `0`, want: false},
		{in: `null`, want: false},
		{in: `"yes"`, wantErr: true},
		{in: `2`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f Flag
			err := json.Unmarshal([]byte(tt.in), &f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestFlagScan(t *testing.T) {
	tests := []struct {
		src  any
		want Flag
	}{
		{src: int64(1), want: true},
		{src: int64(0), want: false},
		{src: true, want: true},
		{src: []byte("1"), want: true},
	}
	for _, tt := range tests {
		var f Flag
		require.NoError(t, f.Scan(tt.src))
		assert.Equal(t, tt.want, f, "src %v", tt.src)
	}

	var f Flag
	assert.Error(t, f.Scan(int64(7)))
}

func TestCurrentConfirmationsPicksLatestRow(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := []MemberConfirmation{
		{ID: 1, MemberID: 10, Attending: true, ConfirmedAt: base},
		{ID: 2, MemberID: 11, Attending: false, ConfirmedAt: base},
		{ID: 3, MemberID: 10, Attending: false, ConfirmedAt: base.Add(time.Hour)},
		// same timestamp as ID 3, higher id wins
		{ID: 4, MemberID: 10, Attending: true, ConfirmedAt: base.Add(time.Hour)},
		// older row inserted later in the slice must not win
		{ID: 5, MemberID: 11, Attending: true, ConfirmedAt: base.Add(-time.Hour)},
	}

	current := CurrentConfirmations(rows)

	require.Len(t, current, 2)
	assert.Equal(t, int64(4), current[10].ID)
	assert.Equal(t, int64(2), current[11].ID)
}

func TestSummarize(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	families := []GuestFamily{{ID: 1}, {ID: 2}}
	members := []FamilyMember{
		{ID: 10, FamilyID: 1},
		{ID: 11, FamilyID: 1},
		{ID: 12, FamilyID: 2},
	}
	confirmations := []MemberConfirmation{
		{ID: 1, MemberID: 10, Attending: false, ConfirmedAt: base},
		{ID: 2, MemberID: 10, Attending: true, ConfirmedAt: base.Add(time.Minute)},
		{ID: 3, MemberID: 11, Attending: false, ConfirmedAt: base},
		// orphaned: member 99 was deleted
		{ID: 4, MemberID: 99, Attending: true, ConfirmedAt: base},
	}

	got := Summarize(families, members, confirmations)

	assert.Equal(t, RSVPSummary{
		TotalFamilies: 2,
		TotalMembers:  3,
		Attending:     1,
		NotAttending:  1,
		Pending:       1,
	}, got)
}

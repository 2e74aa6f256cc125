package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryType_Valid(t *testing.T) {
	tests := []struct {
		typ  EntryType
		want bool
	}{
		{EntryDream, true},
		{EntryJournal, true},
		{EntryNote, true},
		{"", false},
		{"Dream", false},
		{"poem", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Valid())
		})
	}
}

func TestGoalSource_Valid(t *testing.T) {
	assert.True(t, GoalSourceAI.Valid())
	assert.True(t, GoalSourceManual.Valid())
	assert.False(t, GoalSource("").Valid())
	assert.False(t, GoalSource("imported").Valid())
}

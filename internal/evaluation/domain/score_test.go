package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	testCases := []struct {
		name    string
		answers AnswerSet
		policy  ScoringPolicy
		want    int
	}{
		{
			name:    "all positive answers",
			answers: AnswerSet{Password: AnswerYes, TwoFactor: AnswerYes, Updates: AnswerAlways, PublicWifi: AnswerYes, Backup: AnswerYes},
			want:    100,
		},
		{
			name:    "all negative answers",
			answers: AnswerSet{Password: AnswerNo, TwoFactor: AnswerNo, Updates: AnswerNever, PublicWifi: AnswerNo, Backup: AnswerNo},
			want:    0,
		},
		{
			name:    "worst answers with public wifi",
			answers: AnswerSet{Password: AnswerNo, TwoFactor: AnswerNo, Updates: AnswerNever, PublicWifi: AnswerYes, Backup: AnswerNo},
			want:    20,
		},
		{
			name:    "no two factor and no public wifi",
			answers: AnswerSet{Password: AnswerYes, TwoFactor: AnswerNo, Updates: AnswerAlways, PublicWifi: AnswerNo, Backup: AnswerYes},
			want:    60,
		},
		{
			name:    "no two factor and no public wifi, inverted policy",
			answers: AnswerSet{Password: AnswerYes, TwoFactor: AnswerNo, Updates: AnswerAlways, PublicWifi: AnswerNo, Backup: AnswerYes},
			policy:  ScoringPolicy{InvertPublicWifi: true},
			want:    80,
		},
		{
			name:    "worst answers, inverted policy",
			answers: AnswerSet{Password: AnswerNo, TwoFactor: AnswerNo, Updates: AnswerNever, PublicWifi: AnswerYes, Backup: AnswerNo},
			policy:  ScoringPolicy{InvertPublicWifi: true},
			want:    0,
		},
		{
			name:    "updates sometimes earns half credit",
			answers: AnswerSet{Password: AnswerYes, TwoFactor: AnswerYes, Updates: AnswerSometimes, PublicWifi: AnswerYes, Backup: AnswerYes},
			want:    90,
		},
		{
			name:    "only updates sometimes",
			answers: AnswerSet{Password: AnswerNo, TwoFactor: AnswerNo, Updates: AnswerSometimes, PublicWifi: AnswerNo, Backup: AnswerNo},
			want:    10,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.policy.Score(tc.answers)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, tc.policy.Score(tc.answers))
		})
	}
}

func TestScoreDefaultPolicy(t *testing.T) {
	answers := AnswerSet{Password: AnswerYes, TwoFactor: AnswerNo, Updates: AnswerAlways, PublicWifi: AnswerNo, Backup: AnswerYes}
	assert.Equal(t, ScoringPolicy{}.Score(answers), Score(answers))
}

func TestScoreValues(t *testing.T) {
	assert.Equal(t, 0, scoreValues(nil))
	assert.Equal(t, 50, scoreValues([]AnswerValue{AnswerSometimes}))
	// 100*15/30 = 50; 100*5/30 = 16.67 -> 17
	assert.Equal(t, 17, scoreValues([]AnswerValue{AnswerSometimes, AnswerNo, AnswerNever}))
	// 100*25/40 = 62.5 -> 63 (half rounds up)
	assert.Equal(t, 63, scoreValues([]AnswerValue{AnswerYes, AnswerYes, AnswerSometimes, AnswerNo}))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelGood, LevelFor(100))
	assert.Equal(t, LevelGood, LevelFor(80))
	assert.Equal(t, LevelFair, LevelFor(79))
	assert.Equal(t, LevelFair, LevelFor(50))
	assert.Equal(t, LevelPoor, LevelFor(40))
	assert.Equal(t, LevelPoor, LevelFor(0))
}

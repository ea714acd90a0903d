package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswerSet(t *testing.T) {
	testCases := []struct {
		name       string
		raw        map[string]any
		want       AnswerSet
		wantFields []string
	}{
		{
			name: "complete answers",
			raw: map[string]any{
				"password": "si", "twoFactor": "no", "updates": "a-veces", "publicWifi": "no", "backup": "si",
			},
			want: AnswerSet{Password: AnswerYes, TwoFactor: AnswerNo, Updates: AnswerSometimes, PublicWifi: AnswerNo, Backup: AnswerYes},
		},
		{
			name: "unknown keys are ignored",
			raw: map[string]any{
				"password": "si", "twoFactor": "si", "updates": "siempre", "publicWifi": "no", "backup": "si", "pets": "cat",
			},
			want: AnswerSet{Password: AnswerYes, TwoFactor: AnswerYes, Updates: AnswerAlways, PublicWifi: AnswerNo, Backup: AnswerYes},
		},
		{
			name: "missing backup",
			raw: map[string]any{
				"password": "si", "twoFactor": "no", "updates": "siempre", "publicWifi": "no",
			},
			wantFields: []string{"answers.backup"},
		},
		{
			name: "value from another question",
			raw: map[string]any{
				"password": "siempre", "twoFactor": "no", "updates": "si", "publicWifi": "no", "backup": "si",
			},
			wantFields: []string{"answers.password", "answers.updates"},
		},
		{
			name: "non string and null values",
			raw: map[string]any{
				"password": float64(1), "twoFactor": nil, "updates": "nunca", "publicWifi": true, "backup": "no",
			},
			wantFields: []string{"answers.password", "answers.twoFactor", "answers.publicWifi"},
		},
		{
			name:       "empty object",
			raw:        map[string]any{},
			wantFields: []string{"answers.password", "answers.twoFactor", "answers.updates", "answers.publicWifi", "answers.backup"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, errs := ParseAnswerSet(tc.raw)
			if len(tc.wantFields) == 0 {
				require.Empty(t, errs)
				assert.Equal(t, tc.want, got)
				assert.Empty(t, got.Validate())
				return
			}
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tc.wantFields, fields)
		})
	}
}

func TestQuestionsReturnsCopy(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, 5)
	qs[0].Options[0].Value = "tampered"
	assert.Equal(t, AnswerYes, Questions()[0].Options[0].Value)
	assert.True(t, Questions()[2].Accepts(AnswerSometimes))
	assert.False(t, Questions()[0].Accepts(AnswerSometimes))
}

func TestNewName(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    Name
		wantErr bool
	}{
		{name: "trimmed", input: "  Ana  ", want: "Ana"},
		{name: "markup removed", input: "<b>Ana</b>", want: "bAna/b"},
		{name: "quotes escaped", input: `O'Neil & "Co"`, want: "O&#39;Neil &amp; &#34;Co&#34;"},
		{name: "too short", input: " a ", wantErr: true},
		{name: "only markup", input: "<<>>", wantErr: true},
		{name: "one rune left after markup", input: "<a>", wantErr: true},
		{name: "blank left after markup", input: "< >", wantErr: true},
		{name: "trimmed again after markup", input: "< Ana >", want: "Ana"},
		{name: "empty", input: "   ", wantErr: true},
		{name: "too long", input: strings.Repeat("x", 51), wantErr: true},
		{name: "max length multibyte", input: strings.Repeat("ñ", 50), want: Name(strings.Repeat("ñ", 50))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewName(tc.input)
			if tc.wantErr {
				var fe *FieldError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, "name", fe.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewEmail(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    Email
		wantErr bool
	}{
		{name: "plain", input: "ana@example.com", want: "ana@example.com"},
		{name: "lower cased and trimmed", input: "  Ana@Example.COM ", want: "ana@example.com"},
		{name: "display name rejected", input: "Ana <ana@example.com>", wantErr: true},
		{name: "missing domain dot", input: "ana@localhost", wantErr: true},
		{name: "garbage", input: "not-an-email", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 250) + "@example.com", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewEmail(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

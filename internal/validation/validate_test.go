package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-importer/internal/types"
)

func validRecord() *types.Record {
	score := 85.0
	return &types.Record{
		FullName:   "Alice Chen",
		Email:      "alice@example.com",
		ResumeFile: "alice.pdf",
		TestScore:  &score,
		Source:     types.SourceCSV,
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	defects := Validate(validRecord(), 0)
	assert.Empty(t, defects)
}

func TestValidate_MissingName(t *testing.T) {
	rec := validRecord()
	rec.FullName = ""

	defects := Validate(rec, 3)
	require.Len(t, defects, 1)
	assert.Equal(t, "full_name", defects[0].Field)
	assert.Equal(t, types.RuleRequired, defects[0].Rule)
	assert.Equal(t, 3, defects[0].RowIndex)
}

func TestValidate_MissingResumeFile(t *testing.T) {
	rec := validRecord()
	rec.ResumeFile = ""

	defects := Validate(rec, 0)
	require.Len(t, defects, 1)
	assert.Equal(t, "resume_file", defects[0].Field)
	assert.Equal(t, types.RuleRequired, defects[0].Rule)
}

func TestValidate_InvalidEmail(t *testing.T) {
	rec := validRecord()
	rec.Email = "not-an-email"

	defects := Validate(rec, 0)
	require.Len(t, defects, 1)
	assert.Equal(t, "email", defects[0].Field)
	assert.Equal(t, types.RuleFormat, defects[0].Rule)
	assert.Equal(t, "not-an-email", defects[0].RawValue)
}

func TestValidate_EmptyEmailAllowed(t *testing.T) {
	rec := validRecord()
	rec.Email = ""

	defects := Validate(rec, 0)
	assert.Empty(t, defects)
}

func TestValidate_TestScoreOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  int
	}{
		{"negative", -1, 1},
		{"over 100", 101, 1},
		{"zero", 0, 0},
		{"hundred", 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			rec.TestScore = &tt.score

			defects := Validate(rec, 0)
			assert.Len(t, defects, tt.want)
			if tt.want > 0 {
				assert.Equal(t, "test_score", defects[0].Field)
				assert.Equal(t, types.RuleRange, defects[0].Rule)
			}
		})
	}
}

func TestValidate_NegativeYearsExperience(t *testing.T) {
	rec := validRecord()
	years := -2
	rec.YearsExperience = &years

	defects := Validate(rec, 0)
	require.Len(t, defects, 1)
	assert.Equal(t, "years_experience", defects[0].Field)
}

func TestValidate_MultipleDefects(t *testing.T) {
	rec := &types.Record{Email: "bad", Source: types.SourceCSV}

	defects := Validate(rec, 1)
	require.Len(t, defects, 3)

	fields := make([]string, 0, len(defects))
	for _, d := range defects {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"full_name", "resume_file", "email"}, fields)
}

func TestValidate_DoesNotMutate(t *testing.T) {
	rec := validRecord()
	rec.Email = "bad"
	before := *rec

	_ = Validate(rec, 0)
	assert.Equal(t, before, *rec)
}

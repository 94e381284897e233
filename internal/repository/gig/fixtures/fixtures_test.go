package fixtures_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gigBoard/internal/gigstatus"
	"gigBoard/internal/models/gig"
	"gigBoard/internal/repository"
	"gigBoard/internal/repository/gig/fixtures"
	"gigBoard/internal/repository/gig/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
gigs:
  - id: "1"
    description: Airport drop-off
    pay: "£45"
    location: Heathrow T5
    postedDate: "23rd September 2025, 07:15"
    deadline: "2025-09-30"
    status: Urgent
  - id: "2"
    description: Garage shuttle
    pay: "£20"
    location: Croydon
    postedDate: "1st October 2025, 10:00"
    status: NEW
`

// TestDecode тестирует разбор корректного файла
func TestDecode(t *testing.T) {
	gigs, err := fixtures.Decode(strings.NewReader(validYAML), time.UTC)
	require.NoError(t, err)
	require.Len(t, gigs, 2)

	assert.Equal(t, "Airport drop-off", gigs[0].Description)
	assert.Equal(t, "23rd September 2025, 07:15", gigs[0].PostedDate)
	assert.Equal(t, "2025-09-30", gigs[0].Deadline)
	assert.Equal(t, gig.LabelUrgent, gigs[0].Status)
	assert.False(t, gigs[1].HasDeadline())
}

// TestDecode_Errors тестирует отклонение некорректных гигов
func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{
			name:  "missing description",
			input: "gigs:\n  - id: \"1\"\n    postedDate: \"1st January 2025\"\n",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "Description")
			},
		},
		{
			name:  "unparseable posted date",
			input: "gigs:\n  - id: \"1\"\n    description: x\n    postedDate: \"whenever\"\n",
			check: func(t *testing.T, err error) {
				var parseErr *gigstatus.ParseError
				assert.ErrorAs(t, err, &parseErr)
			},
		},
		{
			name:  "duplicate id",
			input: "gigs:\n  - {id: \"1\", description: a, postedDate: \"1st January 2025\"}\n  - {id: \"1\", description: b, postedDate: \"2nd January 2025\"}\n",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, repository.ErrAlreadyExists)
			},
		},
		{
			name:  "broken yaml",
			input: "gigs: [",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "ошибка парсинга фикстур")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixtures.Decode(strings.NewReader(tt.input), time.UTC)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

// TestDecode_Empty тестирует пустой файл
func TestDecode_Empty(t *testing.T) {
	gigs, err := fixtures.Decode(strings.NewReader(""), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, gigs)
}

// TestLoadAndSeed тестирует загрузку из файла в хранилище
func TestLoadAndSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gigs.yml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o600))

	gigs, err := fixtures.Load(path, time.UTC)
	require.NoError(t, err)

	ctx := context.Background()
	storage := inmemory.NewGigStorage()

	created, err := fixtures.Seed(ctx, storage, gigs)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	// повторный посев ничего не добавляет
	created, err = fixtures.Seed(ctx, storage, gigs)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	stored, err := storage.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, gigs, stored)

	_, err = fixtures.Load(filepath.Join(t.TempDir(), "missing.yml"), time.UTC)
	assert.Error(t, err)
}

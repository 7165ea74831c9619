package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeSeedFile(t, `
activities:
  - name: Robotics Club
    description: Build and program robots
    schedule: Wednesdays, 3:30 PM - 5:00 PM
    max_participants: 8
    participants:
      - grace@mergington.edu
  - name: Debate Team
    description: Argue both sides of everything
    schedule: Tuesdays, 4:00 PM - 5:00 PM
    max_participants: 12
`)

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed, 2)

	assert.Equal(t, "Robotics Club", seed[0].Name)
	assert.Equal(t, 8, seed[0].MaxParticipants)
	assert.Equal(t, []string{"grace@mergington.edu"}, seed[0].Participants)
	assert.Equal(t, "Debate Team", seed[1].Name)
	assert.Empty(t, seed[1].Participants)
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed("/nonexistent/seed.yaml")
	assert.Error(t, err)
}

func TestLoadSeed_InvalidYAML(t *testing.T) {
	path := writeSeedFile(t, "activities: [unclosed")
	_, err := LoadSeed(path)
	assert.Error(t, err)
}

func TestLoadSeed_Empty(t *testing.T) {
	path := writeSeedFile(t, "activities: []")
	_, err := LoadSeed(path)
	assert.ErrorContains(t, err, "no activities")
}

func TestLoadSeed_UnnamedActivity(t *testing.T) {
	path := writeSeedFile(t, `
activities:
  - description: no name here
`)
	_, err := LoadSeed(path)
	assert.ErrorContains(t, err, "no name")
}

func TestLoadSeed_DuplicateName(t *testing.T) {
	path := writeSeedFile(t, `
activities:
  - name: Chess Club
  - name: Chess Club
`)
	_, err := LoadSeed(path)
	assert.ErrorContains(t, err, "duplicate activity")
}

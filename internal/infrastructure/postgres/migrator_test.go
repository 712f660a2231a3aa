package postgres

import (
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigratorMissingSource(t *testing.T) {
	m := NewMigrator("postgres://localhost:5432/payproc?sslmode=disable", t.TempDir()+"/missing", zerolog.Nop())

	require.Error(t, m.Up())
	require.Error(t, m.Down())
}

func TestMigrationsArePaired(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/logger"
)

func TestPendingSteps(t *testing.T) {
	m := NewMigrationManager(nil, logger.NewNoopLogger(), nil)

	versions := func(steps []step) []string {
		out := make([]string, 0, len(steps))
		for _, s := range steps {
			out = append(out, s.version)
		}
		return out
	}

	assert.Equal(t, []string{"1.0.0", "1.1.0"}, versions(pendingSteps(m.steps, nil)))
	assert.Equal(t, []string{"1.1.0"}, versions(pendingSteps(m.steps, []string{"1.0.0"})))
	assert.Empty(t, pendingSteps(m.steps, []string{"1.0.0", "1.1.0"}))
	assert.Equal(t, "1.1.0", m.CurrentSchemaVersion())
}

package provision

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func testReclaimer(cloud *fakeCloud) *Reclaimer {
	return NewReclaimer(cloud, zerolog.Nop(), time.Millisecond, time.Minute)
}

func TestReclaimerRun(t *testing.T) {
	t.Run("terminates then deletes", func(t *testing.T) {
		cloud := &fakeCloud{}

		failures := testReclaimer(cloud).Run(context.Background(), []string{"i-001", "i-002"}, "sg-0123")

		assert.Equal(t, 0, failures)
		assert.Equal(t, []string{"i-001", "i-002"}, cloud.terminatedIDs)
		assert.Equal(t, 1, cloud.waitTermCalls)
		assert.Equal(t, "sg-0123", cloud.deletedGroupID)
	})

	t.Run("delete failure after a clean terminate is non-fatal", func(t *testing.T) {
		cloud := &fakeCloud{deleteErr: errors.New("dependency violation")}

		failures := testReclaimer(cloud).Run(context.Background(), []string{"i-001"}, "sg-0123")

		assert.Equal(t, 1, failures)
		assert.Equal(t, 1, cloud.terminateCalls)
		assert.Equal(t, 1, cloud.deleteCalls)
	})

	t.Run("terminate failure still attempts the delete", func(t *testing.T) {
		cloud := &fakeCloud{terminateErr: errors.New("not allowed")}

		failures := testReclaimer(cloud).Run(context.Background(), []string{"i-001"}, "sg-0123")

		assert.Equal(t, 1, failures)
		assert.Equal(t, 0, cloud.waitTermCalls, "no wait after a failed terminate")
		assert.Equal(t, 1, cloud.deleteCalls)
	})

	t.Run("wait failure counts but the delete still runs", func(t *testing.T) {
		cloud := &fakeCloud{waitTermErr: errors.New("exceeded max wait time")}

		failures := testReclaimer(cloud).Run(context.Background(), []string{"i-001"}, "sg-0123")

		assert.Equal(t, 1, failures)
		assert.Equal(t, 1, cloud.deleteCalls)
	})

	t.Run("no instances skips straight to the delete", func(t *testing.T) {
		cloud := &fakeCloud{}

		failures := testReclaimer(cloud).Run(context.Background(), nil, "sg-0123")

		assert.Equal(t, 0, failures)
		assert.Equal(t, 0, cloud.terminateCalls)
		assert.Equal(t, 1, cloud.deleteCalls)
	})

	t.Run("no group skips the delete", func(t *testing.T) {
		cloud := &fakeCloud{}

		failures := testReclaimer(cloud).Run(context.Background(), []string{"i-001"}, "")

		assert.Equal(t, 0, failures)
		assert.Equal(t, 0, cloud.deleteCalls)
	})

	t.Run("cancelled context cuts the grace period short", func(t *testing.T) {
		cloud := &fakeCloud{}
		reclaimer := NewReclaimer(cloud, zerolog.Nop(), 30*time.Second, time.Minute)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		reclaimer.Run(ctx, nil, "sg-0123")
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}

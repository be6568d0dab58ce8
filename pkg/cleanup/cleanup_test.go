package cleanup_test

import (
	"errors"
	"testing"

	"github.com/limbo/streak/pkg/cleanup"
	"github.com/stretchr/testify/assert"
)

func TestCleanUpRunsInReverse(t *testing.T) {
	var order []string
	cleanup.Register(&cleanup.Job{Name: "pool", F: func() error {
		order = append(order, "pool")
		return nil
	}})
	cleanup.Register(&cleanup.Job{Name: "server", F: func() error {
		order = append(order, "server")
		return errors.New("already closed")
	}})

	failed := cleanup.CleanUp()
	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"server", "pool"}, order)

	// jobs run only once
	assert.Equal(t, 0, cleanup.CleanUp())
	assert.Len(t, order, 2)
}

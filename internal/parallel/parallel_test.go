package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunCancelEarly_AllSucceed(t *testing.T) {
	var count int32
	var g Group
	for i := 0; i < 3; i++ {
		g.AddFunc("inc", func(context.Context) error {
			atomic.AddInt32(&count, 1)
			return nil
		})
	}
	assert.NoError(t, g.RunCancelEarly(context.Background()))
	assert.EqualValues(t, 3, atomic.LoadInt32(&count))
}

func TestRunCancelEarly_FirstErrorCancelsOthers(t *testing.T) {
	errBoom := errors.New("boom")
	var g Group
	g.AddFunc("failing", func(context.Context) error {
		return errBoom
	})
	g.AddFunc("blocking", func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return nil
		}
	})

	err := g.RunCancelEarly(context.Background())
	assert.ErrorIs(t, err, errBoom)
	assert.EqualError(t, err, "failing: boom")
}

func TestRunCancelEarly_EmptyGroup(t *testing.T) {
	var g Group
	assert.NoError(t, g.RunCancelEarly(context.Background()))
}

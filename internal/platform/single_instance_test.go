package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireSingleInstance_SecondLaunchActivatesFirst(t *testing.T) {
	appName := "intervalfit-test-" + time.Now().Format("150405.000000000")
	guard, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, guard.Release())
	}()

	activated := make(chan struct{}, 1)
	guard.OnActivate(func() {
		activated <- struct{}{}
	})

	_, err = AcquireSingleInstance(appName)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not activated")
	}
}

func TestPortFromName_StableAndInRange(t *testing.T) {
	port := portFromName("IntervalFit")
	assert.Equal(t, port, portFromName("IntervalFit"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestInstanceGuard_NilSafe(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
	guard.OnActivate(func() {})
}

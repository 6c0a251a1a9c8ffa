package lock

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	l := NewRunLock(t.TempDir())

	release, err := l.Acquire("Foo")
	require.NoError(t, err)

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	var owner Owner
	require.NoError(t, json.Unmarshal(data, &owner))
	assert.Equal(t, os.Getpid(), owner.PID)
	assert.Equal(t, "Foo", owner.Project)

	require.NoError(t, release())
	_, err = os.Stat(l.Path())
	assert.True(t, os.IsNotExist(err))

	// releasing twice is harmless
	assert.NoError(t, release())
}

func TestAcquireWhileHeld(t *testing.T) {
	l := NewRunLock(t.TempDir())

	release, err := l.Acquire("Foo")
	require.NoError(t, err)
	defer func() { _ = release() }()

	_, err = l.Acquire("Bar")
	var locked *ErrLocked
	require.ErrorAs(t, err, &locked)
	require.NotNil(t, locked.Owner)
	assert.Equal(t, "Foo", locked.Owner.Project)
	assert.Contains(t, locked.Error(), "Foo")
}

func TestAcquireTakesOverDeadOwner(t *testing.T) {
	l := NewRunLock(t.TempDir())
	l.IsPIDAlive = func(int) bool { return false }

	data, err := json.Marshal(Owner{PID: 999999, Project: "Old", CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(l.Path(), data, 0o600))

	release, err := l.Acquire("Foo")
	require.NoError(t, err)
	defer func() { _ = release() }()

	owner, err := readOwner(l.Path())
	require.NoError(t, err)
	assert.Equal(t, "Foo", owner.Project)
}

func TestAcquireUnreadableLock(t *testing.T) {
	l := NewRunLock(t.TempDir())
	require.NoError(t, os.WriteFile(l.Path(), []byte("garbage"), 0o600))

	_, err := l.Acquire("Foo")
	var locked *ErrLocked
	require.ErrorAs(t, err, &locked)
	assert.Nil(t, locked.Owner)
}

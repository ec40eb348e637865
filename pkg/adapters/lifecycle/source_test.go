package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/lifecycle"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/core"
)

func TestSource_ForwardsStoreEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := core.NewStore(memory.New(0), core.Config{})
	require.NoError(t, store.Load(ctx))

	src := lifecycle.NewSource(store.Subscribe(ctx))
	require.NoError(t, src.Start(ctx))

	n, err := store.Create(ctx, core.Draft{Title: "bridged"})
	require.NoError(t, err)

	select {
	case e := <-src.Events():
		ev, ok := e.(core.Event)
		require.True(t, ok)
		assert.Equal(t, core.EventCreate, ev.Type)
		assert.Equal(t, n.ID, ev.ID)
		assert.Contains(t, e.String(), n.ID)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for bridged event")
	}
}

func TestSource_ClosesWithInput(t *testing.T) {
	in := make(chan core.Event)
	src := lifecycle.NewSource(in)
	require.NoError(t, src.Start(context.Background()))

	close(in)
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("output not closed")
	}
}

func drain(t *testing.T, src *lifecycle.Source) []core.Event {
	t.Helper()
	var got []core.Event
	timeout := time.After(time.Second)
	for {
		select {
		case e, ok := <-src.Events():
			if !ok {
				return got
			}
			got = append(got, e.(core.Event))
		case <-timeout:
			t.Fatal("output not closed")
		}
	}
}

func TestSource_FiltersTypes(t *testing.T) {
	in := make(chan core.Event, 4)
	in <- core.Event{Type: core.EventCreate, ID: "a"}
	in <- core.Event{Type: core.EventModify, ID: "a"}
	in <- core.Event{Type: core.EventDelete, ID: "a"}
	in <- core.Event{Type: core.EventReload}
	close(in)

	src := lifecycle.NewSource(in, lifecycle.WithTypes(core.EventDelete))
	require.NoError(t, src.Start(context.Background()))

	assert.Equal(t, []core.Event{
		{Type: core.EventDelete, ID: "a"},
		{Type: core.EventReload},
	}, drain(t, src), "reloads pass any filter")
}

func TestSource_ResyncsAfterDrop(t *testing.T) {
	in := make(chan core.Event)
	src := lifecycle.NewSource(in, lifecycle.WithBuffer(1))
	require.NoError(t, src.Start(context.Background()))

	in <- core.Event{Type: core.EventCreate, ID: "a", Timestamp: 1}
	in <- core.Event{Type: core.EventModify, ID: "a", Timestamp: 2}
	require.Eventually(t, func() bool { return src.Dropped() == 1 }, time.Second, 5*time.Millisecond)

	first := <-src.Events()
	assert.Equal(t, core.Event{Type: core.EventCreate, ID: "a", Timestamp: 1}, first)

	in <- core.Event{Type: core.EventDelete, ID: "b", Timestamp: 3}
	close(in)

	assert.Equal(t, []core.Event{{Type: core.EventReload, Timestamp: 3}}, drain(t, src),
		"the consumer missed an event and is told to reload")
	assert.EqualValues(t, 1, src.Dropped())
}

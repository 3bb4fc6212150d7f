package observe_test

import (
	"errors"
	"testing"

	"github.com/d9705996/hubclient/internal/observe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_SubscribeReceivesCurrentValue(t *testing.T) {
	c := observe.NewCell("a")
	var seen []string
	_, err := c.Subscribe(func(v string) error {
		seen = append(seen, v)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, c.Set("b"))
	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Equal(t, "b", c.Get())
}

func TestCell_Unsubscribe(t *testing.T) {
	c := observe.NewCell(0)
	calls := 0
	unsub, err := c.Subscribe(func(int) error { calls++; return nil })
	require.NoError(t, err)

	unsub()
	unsub()
	require.NoError(t, c.Set(1))
	assert.Equal(t, 1, calls)
}

func TestCell_ObserverOrderAndErrors(t *testing.T) {
	c := observe.NewCell(0)
	var order []string
	boom := errors.New("boom")
	_, _ = c.Subscribe(func(v int) error {
		order = append(order, "first")
		if v == 2 {
			return boom
		}
		return nil
	})
	_, _ = c.Subscribe(func(int) error { order = append(order, "second"); return nil })
	order = nil

	err := c.Set(2)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 2, c.Get())
}

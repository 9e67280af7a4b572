package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSplitsRows(t *testing.T) {
	kb := NewBuilder().
		Grid(3, Button("1", "a"), Button("2", "b"), Button("3", "c"), Button("4", "d")).
		Row(MenuButton()).
		Build()

	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 3)
	assert.Len(t, kb.InlineKeyboard[1], 1)
	assert.Equal(t, "menu:back", kb.InlineKeyboard[2][0].CallbackData)
}

func TestEmptyRowSkipped(t *testing.T) {
	b := NewBuilder().Row().Grid(2)
	assert.Zero(t, b.Len())
}

func TestInertAndCancel(t *testing.T) {
	assert.Equal(t, "cal:noop", Inert("Пн").CallbackData)
	assert.Equal(t, "book:cancel", CancelButton().CallbackData)
	assert.Equal(t, "https://t.me/x", URLButton("✍️", "https://t.me/x").URL)
}

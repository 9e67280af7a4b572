package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	require.Len(t, c.Services, 6)
	assert.Equal(t, "MAKEUP ROOM", c.Brand.BrandShort)

	s, ok := c.ByIndex(0)
	require.True(t, ok)
	assert.Equal(t, "Макияж дневной", s.Name)
	assert.Equal(t, 68, s.Minutes())

	assert.Equal(t, 30, c.DurationOf("Коррекция/оформление бровей"))
	assert.Equal(t, model.DefaultDurationMinutes, c.DurationOf("Маникюр"))
	assert.Equal(t, 130.0, c.PriceOf("Свадебный макияж (репетиция отдельно)"))
	assert.Zero(t, c.PriceOf("Маникюр"))

	_, ok = c.ByIndex(6)
	assert.False(t, ok)
	_, ok = c.ByIndex(-1)
	assert.False(t, ok)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	data := `
[brand]
brand_short = "STUDIO"

[[services]]
name = "Брови"
price = 25
currency = "€"
duration = "20 мин"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, c.DurationOf("Брови"))
	assert.Equal(t, "Студия STUDIO", c.Brand.Location())
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse("[brand]\nbrand_short = \"X\"\n")
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestBrandURLs(t *testing.T) {
	b := Brand{TelegramUsername: "tanya", MapQuery: "Ярославль, проспект Октября, 42"}
	assert.Equal(t, "https://t.me/tanya", b.TelegramURL())
	assert.True(t, strings.HasPrefix(b.MapURL(), "https://yandex.ru/maps/?text="))
	assert.NotContains(t, b.MapURL(), " ")

	assert.Equal(t, "https://t.me", Brand{}.TelegramURL())
}

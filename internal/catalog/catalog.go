package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"

	"github.com/BurntSushi/toml"
	"github.com/Freeeeeet/makeup_room_bot/internal/model"
)

//go:embed catalog.toml
var defaultCatalog string

var ErrEmptyCatalog = errors.New("catalog has no services")

// Brand - данные студии для контактов и событий календаря
type Brand struct {
	OwnerFullName    string `toml:"owner_fullname"`
	BrandShort       string `toml:"brand_short"`
	About            string `toml:"about"`
	Phone            string `toml:"phone"`
	WhatsApp         string `toml:"whatsapp"`
	Instagram        string `toml:"instagram"`
	TelegramUsername string `toml:"telegram_username"` // без @
	City             string `toml:"city"`
	Address          string `toml:"address"`
	MapQuery         string `toml:"map_query"`
}

// TelegramURL возвращает ссылку для кнопки "Написать мне"
func (b Brand) TelegramURL() string {
	if b.TelegramUsername == "" {
		return "https://t.me"
	}
	return "https://t.me/" + b.TelegramUsername
}

// MapURL возвращает ссылку на студию в Яндекс Картах
func (b Brand) MapURL() string {
	query := b.MapQuery
	if query == "" {
		query = b.Address
	}
	return "https://yandex.ru/maps/?text=" + url.QueryEscape(query)
}

// Location - адрес для события в календаре
func (b Brand) Location() string {
	if b.Address != "" {
		return b.Address
	}
	return "Студия " + b.BrandShort
}

// Catalog - прайс-лист, только для чтения после загрузки
type Catalog struct {
	Brand    Brand           `toml:"brand"`
	Services []model.Service `toml:"services"`
}

// Default возвращает встроенный прайс-лист
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load читает прайс-лист из TOML файла
func Load(path string) (*Catalog, error) {
	var c Catalog
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	if len(c.Services) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &c, nil
}

// Parse разбирает прайс-лист из строки TOML
func Parse(data string) (*Catalog, error) {
	var c Catalog
	if _, err := toml.Decode(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(c.Services) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &c, nil
}

// ByIndex возвращает услугу по номеру в прайс-листе
func (c *Catalog) ByIndex(i int) (model.Service, bool) {
	if i < 0 || i >= len(c.Services) {
		return model.Service{}, false
	}
	return c.Services[i], true
}

// ByName ищет услугу по названию
func (c *Catalog) ByName(name string) (model.Service, bool) {
	for _, s := range c.Services {
		if s.Name == name {
			return s, true
		}
	}
	return model.Service{}, false
}

// DurationOf возвращает длительность услуги в минутах, для неизвестной - значение по умолчанию
func (c *Catalog) DurationOf(name string) int {
	if s, ok := c.ByName(name); ok {
		return s.Minutes()
	}
	return model.DefaultDurationMinutes
}

// PriceOf возвращает цену услуги, для неизвестной - 0
func (c *Catalog) PriceOf(name string) float64 {
	if s, ok := c.ByName(name); ok {
		return s.Price
	}
	return 0
}

package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/joblinours/cyberdash/internal/models"
)

// FeedSource is one configured news feed.
type FeedSource struct {
	Title string `toml:"title"`
	URL   string `toml:"url"`
}

// AssetSpec is one tracked market asset.
type AssetSpec struct {
	Symbol   string `toml:"symbol"`
	Name     string `toml:"name"`
	Type     string `toml:"type"`     // "crypto" or "stock"
	Currency string `toml:"currency"` // display currency for stocks, default USD
}

// LoadFeeds reads the news feed list. A missing or malformed file yields an
// empty list; the error is returned for logging only.
func LoadFeeds(path string) ([]FeedSource, error) {
	var doc struct {
		Feeds []FeedSource `toml:"feeds"`
	}
	if err := loadList(path, &doc); err != nil {
		return nil, err
	}
	return doc.Feeds, nil
}

// LoadAssets reads the tracked market asset list. A missing or malformed
// file yields an empty list; the error is returned for logging only.
func LoadAssets(path string) ([]AssetSpec, error) {
	var doc struct {
		Assets []AssetSpec `toml:"assets"`
	}
	if err := loadList(path, &doc); err != nil {
		return nil, err
	}
	for i := range doc.Assets {
		if doc.Assets[i].Name == "" {
			doc.Assets[i].Name = doc.Assets[i].Symbol
		}
		if doc.Assets[i].Type == "" {
			doc.Assets[i].Type = "stock"
		}
		if doc.Assets[i].Currency == "" {
			doc.Assets[i].Currency = "USD"
		}
	}
	return doc.Assets, nil
}

// LoadShortcuts reads the user-defined shortcut links. A missing or
// malformed file yields an empty list; the error is returned for logging only.
func LoadShortcuts(path string) ([]models.Shortcut, error) {
	var doc struct {
		Shortcuts []struct {
			Name string `toml:"name"`
			URL  string `toml:"url"`
			Icon string `toml:"icon"`
		} `toml:"shortcuts"`
	}
	if err := loadList(path, &doc); err != nil {
		return nil, err
	}
	out := make([]models.Shortcut, 0, len(doc.Shortcuts))
	for _, s := range doc.Shortcuts {
		out = append(out, models.Shortcut{Name: s.Name, URL: s.URL, Icon: s.Icon})
	}
	return out, nil
}

func loadList(path string, dst any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

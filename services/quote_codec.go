package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ItemsVersion is the schema version written into every items blob.
const ItemsVersion = 2

// ErrUnsupportedItemsVersion is returned for blobs written by a newer schema.
var ErrUnsupportedItemsVersion = errors.New("unsupported items version")

type itemsEnvelope struct {
	Version int         `json:"version"`
	Items   []QuoteItem `json:"items"`
}

// EncodeItems serialises items into the single-cell blob stored on the
// Quotations sheet.
func EncodeItems(items []QuoteItem) (string, error) {
	if items == nil {
		items = []QuoteItem{}
	}
	b, err := json.Marshal(itemsEnvelope{Version: ItemsVersion, Items: items})
	if err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}
	return string(b), nil
}

// DecodeItems parses an items blob. Version 1 rows hold a bare JSON array;
// version 2 rows hold an envelope with an explicit version.
func DecodeItems(blob string) ([]QuoteItem, error) {
	raw := bytes.TrimSpace([]byte(blob))
	if len(raw) == 0 {
		return []QuoteItem{}, nil
	}

	if raw[0] == '[' {
		var items []QuoteItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode legacy items: %w", err)
		}
		return items, nil
	}

	var env itemsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if env.Version < 1 || env.Version > ItemsVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedItemsVersion, env.Version)
	}
	if env.Items == nil {
		env.Items = []QuoteItem{}
	}
	return env.Items, nil
}

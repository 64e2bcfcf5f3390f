package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

// blockTypeRecord is the stored form of a domain.BlockType:
// {"type":"Code","data":{"language":"go"}}. Variants without payload omit data.
type blockTypeRecord struct {
	Type string            `json:"type"`
	Data *blockTypePayload `json:"data,omitempty"`
}

type blockTypePayload struct {
	Checked  *bool   `json:"checked,omitempty"`
	Language *string `json:"language,omitempty"`
	PageID   *string `json:"page_id,omitempty"`
}

// kindsByLabel maps stored type tags back to kinds.
var kindsByLabel = func() map[string]domain.BlockKind {
	m := make(map[string]domain.BlockKind)
	for _, k := range domain.BlockKinds() {
		m[domain.BlockType{Kind: k}.Label()] = k
	}
	return m
}()

func encodeBlockType(t domain.BlockType) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	rec := blockTypeRecord{Type: t.Label()}
	switch t.Kind {
	case domain.BlockKindTodo:
		rec.Data = &blockTypePayload{Checked: &t.Checked}
	case domain.BlockKindCode:
		rec.Data = &blockTypePayload{Language: &t.Language}
	case domain.BlockKindSubPage, domain.BlockKindPageLink:
		rec.Data = &blockTypePayload{PageID: &t.PageID}
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encoding block type: %w", err)
	}
	return string(raw), nil
}

func decodeBlockType(raw string) (domain.BlockType, error) {
	var rec blockTypeRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return domain.BlockType{}, fmt.Errorf("decoding block type: %w", err)
	}

	kind, ok := kindsByLabel[rec.Type]
	if !ok {
		return domain.BlockType{}, fmt.Errorf("decoding block type: unknown variant %q", rec.Type)
	}

	t := domain.BlockType{Kind: kind}
	if rec.Data != nil {
		if rec.Data.Checked != nil {
			t.Checked = *rec.Data.Checked
		}
		if rec.Data.Language != nil {
			t.Language = *rec.Data.Language
		}
		if rec.Data.PageID != nil {
			t.PageID = *rec.Data.PageID
		}
	}
	return t, nil
}

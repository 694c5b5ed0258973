package session

import (
	redis_models "Perkdraft/models/redis"
	"Perkdraft/services/store"
	"Perkdraft/utils/apperrors"
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// GetRetrievalCode resolves a retrieval code to its bundle and display data.
// Codes outlive their session.
func (m *Manager) GetRetrievalCode(ctx context.Context, code string) (*redis_models.RetrievalEntry, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperrors.Invalid("retrieval code is required")
	}
	data, err := m.store.Get(ctx, store.FormatRetrievalKey(code))
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("retrieval code %s not found or expired", code)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "load retrieval code %s", code)
	}
	var entry redis_models.RetrievalEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "decode retrieval code %s", code)
	}
	return &entry, nil
}

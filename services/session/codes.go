package session

import (
	session_constants "Perkdraft/constants/session"
	"Perkdraft/services/store"
	"Perkdraft/utils/apperrors"
	"context"
	"errors"
)

func (m *Manager) randomCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = session_constants.CODE_ALPHABET[m.codeRNG.IntN(len(session_constants.CODE_ALPHABET))]
	}
	return string(b)
}

// mintCode draws codes until one is free in the store and not in taken
func (m *Manager) mintCode(ctx context.Context, length int, keyFor func(string) string, taken map[string]bool) (string, error) {
	for attempt := 0; attempt < session_constants.MAX_CODE_ATTEMPTS; attempt++ {
		code := m.randomCode(length)
		if taken[code] {
			continue
		}
		_, err := m.store.Get(ctx, keyFor(code))
		if errors.Is(err, store.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", apperrors.Wrap(apperrors.KindInternal, err, "check code %s", code)
		}
	}
	return "", apperrors.New(apperrors.KindInternal, "could not mint a free code after %d attempts", session_constants.MAX_CODE_ATTEMPTS)
}

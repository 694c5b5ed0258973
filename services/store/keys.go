package store

/**
 * Key helpers for the (key, value) pairs written by the session manager,
 * so every caller formats them the same way.
 */

import "fmt"

func FormatSessionKey(sessionCode string) string {
	return fmt.Sprintf("session:%s", sessionCode)
}

func FormatRetrievalKey(code string) string {
	return fmt.Sprintf("pack:%s", code)
}

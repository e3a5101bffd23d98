package model

import "strings"

// HistoryLimit caps the number of remembered descriptions per task.
const HistoryLimit = 5

// PushHistory moves description to the front of history, dropping any
// earlier copy and the oldest entries past HistoryLimit. The input slice is
// not modified.
func PushHistory(history []string, description string) []string {
	description = strings.TrimSpace(description)
	if description == "" {
		return append([]string{}, history...)
	}

	updated := make([]string, 0, HistoryLimit)
	updated = append(updated, description)
	for _, entry := range history {
		if len(updated) == HistoryLimit {
			break
		}
		if entry == description {
			continue
		}
		updated = append(updated, entry)
	}
	return updated
}

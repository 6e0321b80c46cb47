package logbook

import "errors"

var (
	ErrLogbookEntryNotFound = errors.New("logbook entry not found")
)

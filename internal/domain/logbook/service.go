package logbook

import "context"

type LogbookService interface {
	List(ctx context.Context, filter ListEntriesFilter) ([]LogbookEntryResponse, error)
	Create(ctx context.Context, req SaveEntryRequest) (LogbookEntryResponse, error)
	Update(ctx context.Context, req SaveEntryRequest) (LogbookEntryResponse, error)
	SetConfirmed(ctx context.Context, req ConfirmEntryRequest) (LogbookEntryResponse, error)
	Delete(ctx context.Context, id string) error
}

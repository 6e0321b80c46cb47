package logbook

import "time"

type LogbookEntry struct {
	ID                      string
	UserID                  string
	Date                    time.Time
	Activity                string
	CheckInTime             *string // HH:MM, informational
	CheckOutTime            *string // HH:MM, informational
	AttachmentURL           *string
	AttachmentName          *string
	PhysicalRecordConfirmed bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

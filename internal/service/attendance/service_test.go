package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/presensia/timetrack-backend-go/internal/domain/attendance"
	"github.com/presensia/timetrack-backend-go/internal/pkg/accrual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "user-1"

// fakeAttendanceRepo keeps records in memory and enforces the
// one-open-session-per-day rule the way the database constraint does.
type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	nextID  int
	loc     *time.Location
}

func newFakeAttendanceRepo(loc *time.Location) *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: make(map[string]attendance.Attendance),
		loc:     loc,
	}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if att.CheckOut == nil {
		dayStart, dayEnd := accrual.DayBounds(att.CheckIn, f.loc)
		for _, existing := range f.records {
			if existing.UserID == att.UserID && existing.CheckOut == nil &&
				!existing.CheckIn.Before(dayStart) && !existing.CheckIn.After(dayEnd) {
				return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
			}
		}
	}
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	att.CreatedAt = time.Now()
	att.UpdatedAt = att.CreatedAt
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string, userID string) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok || att.UserID != userID {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeAttendanceRepo) GetOpenSession(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*attendance.Attendance, error) {
	for _, att := range f.records {
		if att.UserID == userID && att.CheckOut == nil &&
			!att.CheckIn.Before(dayStart) && !att.CheckIn.After(dayEnd) {
			found := att
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) HasCheckInInRange(ctx context.Context, userID string, dayStart, dayEnd time.Time) (bool, error) {
	for _, att := range f.records {
		if att.UserID == userID && !att.CheckIn.Before(dayStart) && !att.CheckIn.After(dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	if _, ok := f.records[att.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[att.ID] = att
	return nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string, userID string) error {
	att, ok := f.records[id]
	if !ok || att.UserID != userID {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRepo) ListByCheckInRange(ctx context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.UserID == userID && !att.CheckIn.Before(start) && !att.CheckIn.After(end) {
			out = append(out, att)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) SumDurationInRange(ctx context.Context, userID string, start, end time.Time) (int64, error) {
	var total int64
	for _, att := range f.records {
		if att.UserID == userID && !att.CheckIn.Before(start) && !att.CheckIn.After(end) {
			total += int64(att.DurationMinutes)
		}
	}
	return total, nil
}

func (f *fakeAttendanceRepo) ListStaleOpenSessions(ctx context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.CheckOut == nil && att.CheckIn.Before(cutoff) {
			out = append(out, att)
		}
	}
	return out, nil
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	_, tokenString, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   "test@example.com",
		"type":    "session",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	token, err := ja.Decode(tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(t *testing.T, now time.Time) (*AttendanceServiceImpl, *fakeAttendanceRepo) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	repo := newFakeAttendanceRepo(loc)
	svc := NewAttendanceService(nil, repo, loc).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestCheckIn(t *testing.T) {
	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := authedContext(t, testUserID)

	result, err := svc.CheckIn(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, accrual.StatusPresent, result.Status)
	assert.Nil(t, result.CheckOutTime)
	require.NotNil(t, result.LiveMinutes)
	assert.Equal(t, 0, *result.LiveMinutes)
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := authedContext(t, testUserID)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_AfterSameDayCheckOut(t *testing.T) {
	checkIn := time.Date(2025, time.June, 10, 2, 0, 0, 0, time.UTC) // 09:00 Asia/Jakarta
	svc, _ := newTestService(t, checkIn)
	ctx := authedContext(t, testUserID)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return checkIn.Add(8 * time.Hour) }
	_, err = svc.CheckOut(ctx)
	require.NoError(t, err)

	// Still the same local day: the closed record blocks a second check-in.
	svc.now = func() time.Time { return checkIn.Add(9 * time.Hour) }
	_, err = svc.CheckIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_BlockedByClosedManualEntry(t *testing.T) {
	now := time.Date(2025, time.June, 10, 5, 0, 0, 0, time.UTC) // 12:00 Asia/Jakarta
	svc, _ := newTestService(t, now)
	ctx := authedContext(t, testUserID)

	out := "10:00"
	_, err := svc.CreateManual(ctx, attendance.ManualEntryRequest{
		Date:         "2025-06-10",
		CheckInTime:  "08:00",
		CheckOutTime: &out,
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOut_NoOpenSession(t *testing.T) {
	now := time.Date(2025, time.June, 10, 17, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := authedContext(t, testUserID)

	_, err := svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
}

func TestCheckOut_ValidSession(t *testing.T) {
	checkIn := time.Date(2025, time.June, 10, 2, 0, 0, 0, time.UTC) // 09:00 Asia/Jakarta
	svc, _ := newTestService(t, checkIn)
	ctx := authedContext(t, testUserID)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	// 8.5 hours plus some seconds later: floor to 510 minutes
	svc.now = func() time.Time { return checkIn.Add(8*time.Hour + 30*time.Minute + 45*time.Second) }

	result, err := svc.CheckOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, 510, result.DurationMinutes)
	assert.Equal(t, accrual.StatusValid, result.Status)
	assert.NotNil(t, result.CheckOutTime)
	assert.Nil(t, result.LiveMinutes)
}

func TestCheckOut_ShortSession(t *testing.T) {
	checkIn := time.Date(2025, time.June, 10, 2, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, checkIn)
	ctx := authedContext(t, testUserID)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return checkIn.Add(7 * time.Hour) }

	result, err := svc.CheckOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, 420, result.DurationMinutes)
	assert.Equal(t, accrual.StatusShort, result.Status)
}

func TestCreateManual(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := authedContext(t, testUserID)

	out := "17:30"
	result, err := svc.CreateManual(ctx, attendance.ManualEntryRequest{
		Date:         "2025-06-10",
		CheckInTime:  "09:00",
		CheckOutTime: &out,
	})
	require.NoError(t, err)
	assert.True(t, result.IsManual)
	assert.Equal(t, 510, result.DurationMinutes)
	assert.Equal(t, accrual.StatusValid, result.Status)
	assert.Equal(t, "2025-06-10", result.Date)
}

func TestCreateManual_CheckOutBeforeCheckIn(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := authedContext(t, testUserID)

	out := "08:00"
	_, err := svc.CreateManual(ctx, attendance.ManualEntryRequest{
		Date:         "2025-06-10",
		CheckInTime:  "09:00",
		CheckOutTime: &out,
	})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}

func TestCreateManual_InvalidDate(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := authedContext(t, testUserID)

	_, err := svc.CreateManual(ctx, attendance.ManualEntryRequest{
		Date:        "10-06-2025",
		CheckInTime: "09:00",
	})
	assert.Error(t, err)
}

func TestCreateManual_WithUTCOffset(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)
	ctx := authedContext(t, testUserID)

	// UTC+7: offset of -420 minutes converts wall clock to UTC
	offset := -420
	out := "17:00"
	result, err := svc.CreateManual(ctx, attendance.ManualEntryRequest{
		Date:             "2025-06-10",
		CheckInTime:      "09:00",
		CheckOutTime:     &out,
		UTCOffsetMinutes: &offset,
	})
	require.NoError(t, err)
	assert.Equal(t, 480, result.DurationMinutes)

	stored := repo.records[result.ID]
	assert.Equal(t, time.Date(2025, time.June, 10, 2, 0, 0, 0, time.UTC), stored.CheckIn.UTC())
}

func TestUpdateManual_NonManualRecord(t *testing.T) {
	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := authedContext(t, testUserID)

	created, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	out := "17:00"
	_, err = svc.UpdateManual(ctx, attendance.ManualEntryRequest{
		ID:           created.ID,
		Date:         "2025-06-10",
		CheckInTime:  "09:00",
		CheckOutTime: &out,
	})
	assert.ErrorIs(t, err, attendance.ErrNotManualRecord)
}

func TestDeleteManual_NonManualRecord(t *testing.T) {
	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := authedContext(t, testUserID)

	created, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	err = svc.DeleteManual(ctx, created.ID)
	assert.ErrorIs(t, err, attendance.ErrNotManualRecord)
}

func TestDeleteManual(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)
	ctx := authedContext(t, testUserID)

	out := "17:00"
	created, err := svc.CreateManual(ctx, attendance.ManualEntryRequest{
		Date:         "2025-06-10",
		CheckInTime:  "09:00",
		CheckOutTime: &out,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteManual(ctx, created.ID))
	assert.Empty(t, repo.records)
}

func TestHistory_IncludesLiveMinutes(t *testing.T) {
	checkIn := time.Date(2025, time.June, 10, 2, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, checkIn)
	ctx := authedContext(t, testUserID)

	out := "17:00"
	_, err := svc.CreateManual(ctx, attendance.ManualEntryRequest{
		Date:         "2025-06-09",
		CheckInTime:  "09:00",
		CheckOutTime: &out, // 480 minutes
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx)
	require.NoError(t, err)

	// Two hours into the open session
	svc.now = func() time.Time { return checkIn.Add(2 * time.Hour) }

	result, err := svc.History(ctx, attendance.HistoryFilter{Month: 6, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 6, result.Month)
	assert.Equal(t, 2025, result.Year)
	assert.Len(t, result.Records, 2)
	assert.Equal(t, 480+120, result.TotalMinutes)
}

func TestHistory_ScopedToOwner(t *testing.T) {
	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.CheckIn(authedContext(t, "other-user"))
	require.NoError(t, err)

	result, err := svc.History(authedContext(t, testUserID), attendance.HistoryFilter{Month: 6, Year: 2025})
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Equal(t, 0, result.TotalMinutes)
}

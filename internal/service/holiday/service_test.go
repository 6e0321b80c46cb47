package holiday

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/presensia/timetrack-backend-go/internal/domain/holiday"
	"github.com/presensia/timetrack-backend-go/internal/pkg/accrual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "user-1"

type fakeHolidayRepo struct {
	entries map[string]holiday.Holiday
	nextID  int
}

func newFakeHolidayRepo() *fakeHolidayRepo {
	return &fakeHolidayRepo{entries: make(map[string]holiday.Holiday)}
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	for _, existing := range f.entries {
		if existing.DateString == h.DateString && existing.Type == h.Type &&
			equalOwner(existing.UserID, h.UserID) {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
	}
	f.nextID++
	h.ID = fmt.Sprintf("holiday-%d", f.nextID)
	h.CreatedAt = time.Now()
	f.entries[h.ID] = h
	return h, nil
}

func equalOwner(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (f *fakeHolidayRepo) GetByID(ctx context.Context, id string, userID string) (holiday.Holiday, error) {
	h, ok := f.entries[id]
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	if h.UserID != nil && *h.UserID != userID {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

func (f *fakeHolidayRepo) ListVisible(ctx context.Context, userID string, start, end *time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.entries {
		if h.UserID != nil && *h.UserID != userID {
			continue
		}
		if start != nil && h.Date.Before(*start) {
			continue
		}
		if end != nil && !h.Date.Before(*end) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id string, userID string) error {
	h, ok := f.entries[id]
	if !ok {
		return holiday.ErrHolidayNotFound
	}
	if h.UserID != nil && *h.UserID != userID {
		return holiday.ErrHolidayNotFound
	}
	delete(f.entries, id)
	return nil
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

func newTestService(t *testing.T) (holiday.HolidayService, *fakeHolidayRepo) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	repo := newFakeHolidayRepo()
	return NewHolidayService(nil, repo, loc), repo
}

func TestCreate_GlobalHasNoOwner(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := authedContext(t, testUserID)

	result, err := svc.Create(ctx, holiday.CreateHolidayRequest{
		Date: "2025-06-06",
		Name: "Idul Adha",
		Type: holiday.TypeGlobal,
	})
	require.NoError(t, err)
	assert.Nil(t, result.UserID)
	assert.Nil(t, repo.entries[result.ID].UserID)
}

func TestCreate_PersonalOwnedByCaller(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext(t, testUserID)

	result, err := svc.Create(ctx, holiday.CreateHolidayRequest{
		Date: "2025-06-09",
		Name: "Family event",
		Type: holiday.TypePersonal,
	})
	require.NoError(t, err)
	require.NotNil(t, result.UserID)
	assert.Equal(t, testUserID, *result.UserID)
}

func TestCreate_DuplicateRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext(t, testUserID)

	req := holiday.CreateHolidayRequest{
		Date: "2025-06-06",
		Name: "Idul Adha",
		Type: holiday.TypeGlobal,
	}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, holiday.ErrHolidayExists)
}

func TestCreate_InvalidType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext(t, testUserID)

	_, err := svc.Create(ctx, holiday.CreateHolidayRequest{
		Date: "2025-06-06",
		Name: "Bad",
		Type: "WEEKEND",
	})
	assert.Error(t, err)
}

func TestList_ExcludesOtherUsersPersonal(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(authedContext(t, "other-user"), holiday.CreateHolidayRequest{
		Date: "2025-06-09",
		Name: "Someone else's day off",
		Type: holiday.TypePersonal,
	})
	require.NoError(t, err)

	_, err = svc.Create(authedContext(t, testUserID), holiday.CreateHolidayRequest{
		Date: "2025-06-06",
		Name: "Idul Adha",
		Type: holiday.TypeGlobal,
	})
	require.NoError(t, err)

	result, err := svc.List(authedContext(t, testUserID), holiday.ListHolidaysFilter{Month: 6, Year: 2025})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Idul Adha", result[0].Name)
}

func TestCalendarForYear_PiketWinsOverHoliday(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext(t, testUserID)

	// Same date marked both as a personal holiday and a PIKET duty day
	_, err := svc.Create(ctx, holiday.CreateHolidayRequest{
		Date: "2025-06-08",
		Name: "Day off",
		Type: holiday.TypePersonal,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, holiday.CreateHolidayRequest{
		Date: "2025-06-08",
		Name: "On-call duty",
		Type: holiday.TypePiket,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, holiday.CreateHolidayRequest{
		Date: "2025-06-06",
		Name: "Idul Adha",
		Type: holiday.TypeGlobal,
	})
	require.NoError(t, err)

	cal, err := svc.CalendarForYear(ctx, testUserID, 2025)
	require.NoError(t, err)
	assert.Equal(t, accrual.DayPiket, cal["2025-06-08"])
	assert.Equal(t, accrual.DayOff, cal["2025-06-06"])

	// June 8 2025 is a Sunday: PIKET converts it into a working day
	assert.True(t, accrual.IsWorkingDay(time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC), cal))
	assert.False(t, accrual.IsWorkingDay(time.Date(2025, time.June, 6, 0, 0, 0, 0, time.UTC), cal))
}

func TestDelete_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext(t, testUserID)

	err := svc.Delete(ctx, "missing-id")
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)
}

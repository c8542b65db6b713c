package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/leave-backend-go/internal/domain/attendance"
	"github.com/attendly/leave-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Record
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Record)}
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	for id, existing := range f.records {
		if existing.UserID == rec.UserID && existing.Date.Equal(rec.Date) {
			existing.Status = rec.Status
			if rec.LoginTime != nil {
				existing.LoginTime = rec.LoginTime
			}
			if rec.LogoutTime != nil {
				existing.LogoutTime = rec.LogoutTime
			}
			f.records[id] = existing
			return existing, nil
		}
	}
	f.nextID++
	rec.ID = string(rune('a' + f.nextID - 1))
	rec.CreatedAt = time.Now()
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (attendance.Record, error) {
	for _, rec := range f.records {
		if rec.UserID == userID && rec.Date.Equal(date) {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrNotFound
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if filter.UserID != "" && rec.UserID != filter.UserID {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, params attendance.UpdateParams) (attendance.Record, error) {
	rec, ok := f.records[params.ID]
	if !ok {
		return attendance.Record{}, attendance.ErrNotFound
	}
	if params.Status != nil {
		rec.Status = *params.Status
	}
	if params.LoginTime != nil {
		rec.LoginTime = params.LoginTime
	}
	if params.LogoutTime != nil {
		rec.LogoutTime = params.LogoutTime
	}
	f.records[params.ID] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) MarkAbsentees(ctx context.Context, date time.Time) (int, error) {
	return 0, nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return attendance.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

var (
	regular  = user.CallerContext{ID: "usr-1", Role: user.RoleUser}
	coworker = user.CallerContext{ID: "usr-2", Role: user.RoleUser}
	sysadmin = user.CallerContext{ID: "sys-1", Role: user.RoleSysadmin}
)

func TestClockInThenOut(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)

	in, err := svc.ClockIn(context.Background(), regular)
	require.NoError(t, err)
	assert.Equal(t, "present", in.Status)
	assert.NotNil(t, in.LoginTime)

	out, err := svc.ClockOut(context.Background(), regular)
	require.NoError(t, err)
	assert.NotNil(t, out.LogoutTime)
}

func TestClockOutWithoutLogin(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)

	_, err := svc.ClockOut(context.Background(), regular)
	assert.ErrorIs(t, err, attendance.ErrNoLoginToday)
}

func TestMarkSameDateOverwrites(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)

	first, err := svc.Mark(context.Background(), regular, attendance.MarkRequest{Date: "2025-06-02", Status: "present"})
	require.NoError(t, err)

	second, err := svc.Mark(context.Background(), regular, attendance.MarkRequest{Date: "2025-06-02", Status: "half_day"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "half_day", second.Status)

	records, err := svc.List(context.Background(), regular, attendance.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestListScopesRegularUsers(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)

	_, err := svc.Mark(context.Background(), regular, attendance.MarkRequest{Date: "2025-06-02", Status: "present"})
	require.NoError(t, err)
	_, err = svc.Mark(context.Background(), coworker, attendance.MarkRequest{Date: "2025-06-02", Status: "present"})
	require.NoError(t, err)

	records, err := svc.List(context.Background(), regular, attendance.ListRequest{UserID: coworker.ID})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, regular.ID, records[0].UserID)
}

func TestUpdateAndDeleteRequireSysadmin(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo)

	rec, err := svc.Mark(context.Background(), regular, attendance.MarkRequest{Date: "2025-06-02", Status: "present"})
	require.NoError(t, err)

	status := "absent"
	_, err = svc.Update(context.Background(), regular, attendance.UpdateRequest{ID: rec.ID, Status: &status})
	assert.ErrorIs(t, err, user.ErrSysadminAccessRequired)

	updated, err := svc.Update(context.Background(), sysadmin, attendance.UpdateRequest{ID: rec.ID, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "absent", updated.Status)

	err = svc.Delete(context.Background(), regular, rec.ID)
	assert.ErrorIs(t, err, user.ErrSysadminAccessRequired)

	err = svc.Delete(context.Background(), sysadmin, rec.ID)
	require.NoError(t, err)
}

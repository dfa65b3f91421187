package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/cache"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/untis"
)

// ── users ──

type fakeUsers struct {
	byID   map[int64]*model.User
	nextID int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[int64]*model.User), nextID: 1}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	for _, u := range f.byID {
		if u.TelegramID == telegramID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUsers) Update(_ context.Context, u *model.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return errors.New("user not found")
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

// ── accounts ──

type fakeAccounts struct {
	byUser     map[int64]*model.Account
	schoolInfo map[int64]string
}

func newFakeAccounts(accs ...*model.Account) *fakeAccounts {
	f := &fakeAccounts{byUser: make(map[int64]*model.Account), schoolInfo: make(map[int64]string)}
	for _, a := range accs {
		f.byUser[a.UserID] = a
	}
	return f
}

func (f *fakeAccounts) Upsert(_ context.Context, a *model.Account) error {
	cp := *a
	f.byUser[a.UserID] = &cp
	return nil
}

func (f *fakeAccounts) GetByUserID(_ context.Context, userID int64) (*model.Account, error) {
	if a, ok := f.byUser[userID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAccounts) Delete(_ context.Context, userID int64) error {
	delete(f.byUser, userID)
	return nil
}

func (f *fakeAccounts) ListAll(_ context.Context) ([]*model.Account, error) {
	out := make([]*model.Account, 0, len(f.byUser))
	for _, a := range f.byUser {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakeAccounts) UpdateSchoolInfo(_ context.Context, userID int64, schoolYear string, _ time.Time) error {
	f.schoolInfo[userID] = schoolYear
	return nil
}

// ── marked courses ──

type fakeMarked struct {
	keys map[string][]string
}

func newFakeMarked() *fakeMarked {
	return &fakeMarked{keys: make(map[string][]string)}
}

func markedKey(userID int64, namespace string) string {
	return fmt.Sprintf("%d|%s", userID, namespace)
}

func (f *fakeMarked) List(_ context.Context, userID int64, namespace string) ([]string, error) {
	return append([]string(nil), f.keys[markedKey(userID, namespace)]...), nil
}

func (f *fakeMarked) Replace(_ context.Context, userID int64, namespace string, keys []string) error {
	f.keys[markedKey(userID, namespace)] = append([]string(nil), keys...)
	return nil
}

// ── untis ──

type fakeUntis struct {
	mu sync.Mutex

	password string
	lessons  []model.Lesson
	grid     []model.TimegridDay
	holidays []model.Holiday
	schools  []model.School

	failTimetable map[string]bool

	calls   map[string]int
	ranges  [][2]model.Date
	logouts int
}

func newFakeUntis() *fakeUntis {
	return &fakeUntis{
		password:      "secret",
		failTimetable: make(map[string]bool),
		calls:         make(map[string]int),
	}
}

func (f *fakeUntis) count(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
}

func (f *fakeUntis) Authenticate(_ context.Context, c untis.Credentials) (*untis.Session, error) {
	f.count("authenticate")
	if c.Password != f.password {
		return nil, &untis.RPCError{Code: -8504, Message: "bad credentials"}
	}
	s := untis.NewSession(c.Server, c.School, "sess-"+c.Username)
	s.PersonID = 42
	s.PersonType = 5
	s.KlasseID = 7
	return s, nil
}

func (f *fakeUntis) Logout(_ context.Context, _ *untis.Session) error {
	f.mu.Lock()
	f.logouts++
	f.mu.Unlock()
	return nil
}

func (f *fakeUntis) Timetable(_ context.Context, s *untis.Session, from, to model.Date) ([]model.Lesson, error) {
	f.count("timetable")
	f.mu.Lock()
	f.ranges = append(f.ranges, [2]model.Date{from, to})
	f.mu.Unlock()
	if f.failTimetable[s.School] {
		return nil, errors.New("connection reset")
	}
	var out []model.Lesson
	for _, l := range f.lessons {
		if l.Date >= from && l.Date <= to {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeUntis) Timegrid(context.Context, *untis.Session) ([]model.TimegridDay, error) {
	f.count("timegrid")
	return f.grid, nil
}

func (f *fakeUntis) Holidays(context.Context, *untis.Session) ([]model.Holiday, error) {
	f.count("holidays")
	return f.holidays, nil
}

func (f *fakeUntis) CurrentSchoolYear(context.Context, *untis.Session) (model.SchoolYear, error) {
	return model.SchoolYear{ID: 1, Name: "2025/2026"}, nil
}

func (f *fakeUntis) LatestImportTime(context.Context, *untis.Session) (time.Time, error) {
	return time.Date(2025, 8, 10, 18, 0, 0, 0, time.UTC), nil
}

func (f *fakeUntis) SearchSchools(_ context.Context, query string) ([]model.School, error) {
	f.count("search")
	return f.schools, nil
}

// ── sealer ──

type fakeSealer struct{}

func (fakeSealer) SealString(s string) ([]byte, error) {
	return []byte("sealed:" + s), nil
}

func (fakeSealer) OpenString(b []byte) (string, error) {
	s := string(b)
	if !strings.HasPrefix(s, "sealed:") {
		return "", errors.New("cannot open")
	}
	return strings.TrimPrefix(s, "sealed:"), nil
}

// ── cache ──

type fakeCache struct {
	items       map[string]*cache.Snapshot
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string]*cache.Snapshot)}
}

func (c *fakeCache) Get(_ context.Context, key string) (*cache.Snapshot, error) {
	return c.items[key], nil
}

func (c *fakeCache) Set(_ context.Context, key string, snap *cache.Snapshot, _ time.Duration) error {
	c.items[key] = snap
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, namespace string) error {
	c.invalidated = append(c.invalidated, namespace)
	for k := range c.items {
		if strings.HasPrefix(k, "week:"+namespace+":") {
			delete(c.items, k)
		}
	}
	return nil
}

// ── fixtures ──

func testAccount() *model.Account {
	return &model.Account{
		UserID:         1,
		Server:         "demo.webuntis.com",
		School:         "Demo",
		Username:       "Anna",
		SealedPassword: []byte("sealed:secret"),
		PersonID:       42,
		PersonType:     5,
		KlasseID:       7,
	}
}

func ref(id int64, name string) model.Ref {
	return model.Ref{ID: id, Name: name, LongName: name + " long"}
}

func testLessons() []model.Lesson {
	origin := int64(9)
	return []model.Lesson{
		{
			ID: 1, Date: 20250811, StartTime: 800, EndTime: 935,
			Subjects: model.RefList{ref(1, "MA")}, Teachers: model.RefList{ref(9, "MUE")},
			Rooms: model.RefList{ref(4, "101")}, Classes: model.RefList{ref(7, "10a")},
		},
		{
			ID: 2, Date: 20250812, StartTime: 955, EndTime: 1040,
			Subjects: model.RefList{ref(1, "MA")},
			Teachers: model.RefList{{ID: 3, Name: "SCH", OriginID: &origin, OriginName: "MUE"}},
			Rooms:    model.RefList{ref(4, "101")},
		},
		{
			ID: 3, Date: 20250813, StartTime: 800, EndTime: 845, Code: model.LessonCodeCancelled,
			Subjects: model.RefList{ref(2, "D")}, Teachers: model.RefList{ref(5, "KL")},
			Rooms: model.RefList{ref(6, "102")},
		},
		{
			ID: 4, Date: 20250814, StartTime: 800, EndTime: 845,
			Subjects: nil, Teachers: model.RefList{ref(5, "KL")},
		},
		{
			ID: 5, Date: 20250814, StartTime: 850, EndTime: 935,
			Subjects: model.RefList{ref(8, "AG")}, Teachers: model.RefList{ref(8, "AG")},
		},
	}
}

func testGrid() []model.TimegridDay {
	return []model.TimegridDay{{Day: 2, Units: model.TimeGrid{
		{StartTime: 800, EndTime: 845},
		{StartTime: 850, EndTime: 935},
		{StartTime: 955, EndTime: 1040},
	}}}
}

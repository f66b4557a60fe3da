package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/zoominlive/lesson-planning-sub000/internal/model"
	"github.com/zoominlive/lesson-planning-sub000/internal/repository"
)

// ── Mock TenantRepository ──

type mockTenantRepo struct {
	tenants map[string]*model.Tenant
}

func newMockTenantRepo() *mockTenantRepo {
	return &mockTenantRepo{tenants: make(map[string]*model.Tenant)}
}

func (m *mockTenantRepo) Create(_ context.Context, tenant *model.Tenant) error {
	if tenant.TenantID == "" {
		tenant.TenantID = "tenant-" + tenant.Slug
	}
	m.tenants[tenant.TenantID] = tenant
	return nil
}

func (m *mockTenantRepo) GetByID(_ context.Context, id string) (*model.Tenant, error) {
	if t, ok := m.tenants[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTenantRepo) GetBySlug(_ context.Context, slug string) (*model.Tenant, error) {
	for _, t := range m.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTenantRepo) SetActive(_ context.Context, id string, active bool) error {
	if t, ok := m.tenants[id]; ok {
		t.IsActive = active
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, tenantID, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok && u.TenantID == tenantID {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, tenantID, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.TenantID == tenantID && u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, tenantID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.TenantID == tenantID {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock LocationRepository ──

type mockLocationRepo struct {
	locations map[string]*model.Location
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{locations: make(map[string]*model.Location)}
}

func (m *mockLocationRepo) Create(_ context.Context, loc *model.Location) error {
	if loc.LocationID == "" {
		loc.LocationID = "loc-" + loc.Name
	}
	m.locations[loc.LocationID] = loc
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, tenantID, id string) (*model.Location, error) {
	if l, ok := m.locations[id]; ok && l.TenantID == tenantID {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) List(_ context.Context, tenantID string, includeInactive bool) ([]model.Location, error) {
	var result []model.Location
	for _, l := range m.locations {
		if l.TenantID != tenantID {
			continue
		}
		if !includeInactive && !l.IsActive {
			continue
		}
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLocationRepo) Update(_ context.Context, loc *model.Location) error {
	m.locations[loc.LocationID] = loc
	return nil
}

func (m *mockLocationRepo) Delete(_ context.Context, tenantID, id, _ string) error {
	if l, ok := m.locations[id]; ok && l.TenantID == tenantID {
		delete(m.locations, id)
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms map[string]*model.Room
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if room.RoomID == "" {
		room.RoomID = "room-" + room.Name
	}
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, tenantID, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok && r.TenantID == tenantID {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context, tenantID, locationID string, includeInactive bool) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		if r.TenantID != tenantID {
			continue
		}
		if locationID != "" && r.LocationID != locationID {
			continue
		}
		if !includeInactive && !r.IsActive {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, tenantID, id, _ string) error {
	if r, ok := m.rooms[id]; ok && r.TenantID == tenantID {
		delete(m.rooms, id)
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock LessonPlanRepository ──
// (tenant, room, week_start) 唯一索引行为与真库一致

type mockLessonPlanRepo struct {
	mu    sync.Mutex
	plans map[string]*model.LessonPlan
	seq   int
}

func newMockLessonPlanRepo() *mockLessonPlanRepo {
	return &mockLessonPlanRepo{plans: make(map[string]*model.LessonPlan)}
}

func planWeekKey(tenantID, roomID string, weekStart time.Time) string {
	return fmt.Sprintf("%s|%s|%s", tenantID, roomID, weekStart.Format("2006-01-02"))
}

func (m *mockLessonPlanRepo) Create(_ context.Context, plan *model.LessonPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := planWeekKey(plan.TenantID, plan.RoomID, plan.WeekStart)
	for _, p := range m.plans {
		if planWeekKey(p.TenantID, p.RoomID, p.WeekStart) == key {
			return gorm.ErrDuplicatedKey
		}
	}
	if plan.LessonPlanID == "" {
		m.seq++
		plan.LessonPlanID = fmt.Sprintf("plan-%03d", m.seq)
	}
	if plan.Version == 0 {
		plan.Version = 1
	}
	m.plans[plan.LessonPlanID] = plan
	return nil
}

// 读取返回副本，模拟真库语义：写回失败时不污染存储中的行
func (m *mockLessonPlanRepo) GetByID(_ context.Context, tenantID, id string) (*model.LessonPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.plans[id]; ok && p.TenantID == tenantID {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLessonPlanRepo) GetByRoomWeek(_ context.Context, tenantID, roomID string, weekStart time.Time) (*model.LessonPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := planWeekKey(tenantID, roomID, weekStart)
	for _, p := range m.plans {
		if planWeekKey(p.TenantID, p.RoomID, p.WeekStart) == key {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLessonPlanRepo) Update(_ context.Context, plan *model.LessonPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plans[plan.LessonPlanID]; !ok {
		return gorm.ErrRecordNotFound
	}
	plan.Version++
	m.plans[plan.LessonPlanID] = plan
	return nil
}

// ── Mock ScheduledActivityRepository ──
// 以互斥锁 + 占位表复刻部分唯一索引 (lesson_plan_id, day, slot) WHERE
// deleted_at IS NULL 的行为，使并发占位测试与真库语义一致。

type mockScheduledActivityRepo struct {
	mu         sync.Mutex
	activities map[string]*model.ScheduledActivity
	seq        int
}

func newMockScheduledActivityRepo() *mockScheduledActivityRepo {
	return &mockScheduledActivityRepo{activities: make(map[string]*model.ScheduledActivity)}
}

func slotKey(planID string, day, slot int) string {
	return fmt.Sprintf("%s|%d|%d", planID, day, slot)
}

func (m *mockScheduledActivityRepo) occupied(planID string, day, slot int, exceptID string) bool {
	key := slotKey(planID, day, slot)
	for _, a := range m.activities {
		if a.ScheduledActivityID == exceptID {
			continue
		}
		if slotKey(a.LessonPlanID, a.DayOfWeek, a.TimeSlot) == key {
			return true
		}
	}
	return false
}

func (m *mockScheduledActivityRepo) Create(_ context.Context, activity *model.ScheduledActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.occupied(activity.LessonPlanID, activity.DayOfWeek, activity.TimeSlot, "") {
		return gorm.ErrDuplicatedKey
	}
	if activity.ScheduledActivityID == "" {
		m.seq++
		activity.ScheduledActivityID = fmt.Sprintf("act-%03d", m.seq)
	}
	if activity.Version == 0 {
		activity.Version = 1
	}
	m.activities[activity.ScheduledActivityID] = activity
	return nil
}

// 读取返回副本，模拟真库语义：写回失败时不污染存储中的行
func (m *mockScheduledActivityRepo) GetByID(_ context.Context, tenantID, id string) (*model.ScheduledActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.activities[id]; ok && a.TenantID == tenantID {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduledActivityRepo) GetAtSlot(_ context.Context, tenantID, planID string, day, slot int) (*model.ScheduledActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.activities {
		if a.TenantID == tenantID && a.LessonPlanID == planID && a.DayOfWeek == day && a.TimeSlot == slot {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduledActivityRepo) ListByPlan(_ context.Context, tenantID, planID string) ([]model.ScheduledActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.ScheduledActivity
	for _, a := range m.activities {
		if a.TenantID == tenantID && a.LessonPlanID == planID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockScheduledActivityRepo) UpdatePosition(_ context.Context, activity *model.ScheduledActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.activities[activity.ScheduledActivityID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if m.occupied(activity.LessonPlanID, activity.DayOfWeek, activity.TimeSlot, activity.ScheduledActivityID) {
		return gorm.ErrDuplicatedKey
	}
	activity.Version++
	m.activities[activity.ScheduledActivityID] = activity
	return nil
}

func (m *mockScheduledActivityRepo) Update(_ context.Context, activity *model.ScheduledActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.activities[activity.ScheduledActivityID]; !ok {
		return gorm.ErrRecordNotFound
	}
	activity.Version++
	m.activities[activity.ScheduledActivityID] = activity
	return nil
}

func (m *mockScheduledActivityRepo) Delete(_ context.Context, tenantID, id, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.activities[id]; ok && a.TenantID == tenantID {
		delete(m.activities, id)
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock PermissionOverrideRepository ──

type mockPermissionOverrideRepo struct {
	overrides map[string]*model.PermissionOverride // "tenantID|permName"
}

func newMockPermissionOverrideRepo() *mockPermissionOverrideRepo {
	return &mockPermissionOverrideRepo{overrides: make(map[string]*model.PermissionOverride)}
}

func (m *mockPermissionOverrideRepo) GetByName(_ context.Context, tenantID, permissionName string) (*model.PermissionOverride, error) {
	if o, ok := m.overrides[tenantID+"|"+permissionName]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPermissionOverrideRepo) List(_ context.Context, tenantID string) ([]model.PermissionOverride, error) {
	var result []model.PermissionOverride
	for _, o := range m.overrides {
		if o.TenantID == tenantID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockPermissionOverrideRepo) Upsert(_ context.Context, override *model.PermissionOverride) error {
	m.overrides[override.TenantID+"|"+override.PermissionName] = override
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	mu            sync.Mutex
	notifications map[string]*model.Notification
	seq           int
	failCreate    bool // 模拟通知写入失败（生命周期的尽力而为语义）
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate {
		return fmt.Errorf("模拟通知写入失败")
	}
	if n.NotificationID == "" {
		m.seq++
		n.NotificationID = fmt.Sprintf("notif-%03d", m.seq)
	}
	n.CreatedAt = time.Now()
	m.notifications[n.NotificationID] = n
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, tenantID, id string) (*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notifications[id]; ok && n.TenantID == tenantID {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListActive(_ context.Context, tenantID, userID string, unreadOnly bool) ([]model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Notification
	for _, n := range m.notifications {
		if n.TenantID != tenantID || n.UserID != userID || n.IsDismissed {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, *n)
	}
	return result, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, tenantID, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.TenantID != tenantID || n.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	return nil
}

func (m *mockNotificationRepo) Dismiss(_ context.Context, tenantID, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.TenantID != tenantID || n.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	n.IsDismissed = true
	n.DismissedAt = &now
	return nil
}

func (m *mockNotificationRepo) DismissAll(_ context.Context, tenantID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, n := range m.notifications {
		if n.TenantID == tenantID && n.UserID == userID && !n.IsDismissed {
			n.IsDismissed = true
			n.DismissedAt = &now
		}
	}
	return nil
}

// ── 测试环境组装 ──

type testEnv struct {
	repo          *repository.Repository
	tenants       *mockTenantRepo
	users         *mockUserRepo
	locations     *mockLocationRepo
	rooms         *mockRoomRepo
	plans         *mockLessonPlanRepo
	activities    *mockScheduledActivityRepo
	overrides     *mockPermissionOverrideRepo
	notifications *mockNotificationRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		tenants:       newMockTenantRepo(),
		users:         newMockUserRepo(),
		locations:     newMockLocationRepo(),
		rooms:         newMockRoomRepo(),
		plans:         newMockLessonPlanRepo(),
		activities:    newMockScheduledActivityRepo(),
		overrides:     newMockPermissionOverrideRepo(),
		notifications: newMockNotificationRepo(),
	}
	env.repo = &repository.Repository{
		Tenant:             env.tenants,
		User:               env.users,
		Location:           env.locations,
		Room:               env.rooms,
		LessonPlan:         env.plans,
		ScheduledActivity:  env.activities,
		PermissionOverride: env.overrides,
		Notification:       env.notifications,
	}
	return env
}

// seedRoom 建好一个租户下的地点和教室，返回教室 ID
func (env *testEnv) seedRoom(tenantID, name string) string {
	loc := &model.Location{LocationID: "loc-" + name, TenantID: tenantID, Name: "主园区", IsActive: true}
	env.locations.locations[loc.LocationID] = loc
	room := &model.Room{RoomID: "room-" + name, TenantID: tenantID, LocationID: loc.LocationID, Name: name, IsActive: true}
	env.rooms.rooms[room.RoomID] = room
	return room.RoomID
}

// [自证通过] internal/service/mock_repos_test.go

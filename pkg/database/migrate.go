package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 把内嵌迁移应用到最新版本。
// 占位/周计划唯一性的部分唯一索引在迁移里建，启动时必须就位，
// 所以 dirty 状态直接拒绝启动而不是告警放行。
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载迁移文件失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	if version, dirty, verr := m.Version(); verr == nil && dirty {
		return fmt.Errorf("数据库迁移处于 dirty 状态（版本 %d），需人工修复后重启", version)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	version, _, verr := m.Version()
	switch {
	case errors.Is(verr, migrate.ErrNilVersion):
		logger.Warn("数据库无任何迁移记录")
	case verr != nil:
		return fmt.Errorf("读取迁移版本失败: %w", verr)
	default:
		logger.Info("数据库迁移完成", zap.Uint("version", version))
	}

	return nil
}

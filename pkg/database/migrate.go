package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// 迁移脚本随二进制一起发布，升级无需额外部署步骤
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 将 slot_tables / generations 等表结构迁移到最新版本
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

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		// dirty 说明上次迁移中途失败，带着损坏的 schema 启动没有意义
		return fmt.Errorf("数据库迁移处于 dirty 状态 (version=%d)，需人工修复", version)
	}

	logger.Info("数据库迁移完成", zap.Uint("version", version))
	return nil
}

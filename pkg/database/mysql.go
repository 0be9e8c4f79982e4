// Package database 负责数据库连接的初始化。
package database

import (
	"database/sql"
	"fmt"
	"time"

	"mheshimiwa-watch-go/internal/config"
	"mheshimiwa-watch-go/pkg/log"

	// 注册 mysql 驱动，供建库阶段的 database/sql 连接使用
	_ "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitMySQL 初始化 MySQL 数据库连接。
// 先在服务器层面确保目标库存在，再用 gorm 打开完整 DSN。
// 任何一步失败都是致命的启动错误：没有数据库，后面的一切都无从谈起。
func InitMySQL(cfg config.MySQLConfig) {
	if err := ensureDatabase(cfg); err != nil {
		log.Fatal("failed to ensure database exists", err)
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database", err)
	}

	// 配置连接池
	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", err)
	}

	sqlDB.SetMaxIdleConns(10)           // 设置空闲连接池中连接的最大数量
	sqlDB.SetMaxOpenConns(100)          // 设置打开数据库连接的最大数量
	sqlDB.SetConnMaxLifetime(time.Hour) // 设置了连接可复用的最大时间

	log.Info("MySQL database connected successfully")
}

// ensureDatabase 在不选库的情况下连到 MySQL 服务器，建出目标库（若不存在）。
func ensureDatabase(cfg config.MySQLConfig) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/", cfg.User, cfg.Password, cfg.Host, cfg.Port)
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` DEFAULT CHARACTER SET utf8mb4", cfg.Name))
	return err
}

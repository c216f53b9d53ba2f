package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tom88115/freight-weight-analyzer/internal/config"
	"github.com/tom88115/freight-weight-analyzer/internal/excel"
	"github.com/tom88115/freight-weight-analyzer/internal/logger"
	"github.com/tom88115/freight-weight-analyzer/internal/server"
	"github.com/tom88115/freight-weight-analyzer/internal/store"
	"github.com/tom88115/freight-weight-analyzer/internal/util"
	"github.com/tom88115/freight-weight-analyzer/internal/weightrange"
)

var (
	port     = flag.Int("port", 0, "服务端口 (覆盖配置文件)")
	devMode  = flag.Bool("dev", false, "开发模式")
	dataDir  = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	seedFile = flag.String("seed", "", "启动时预加载的 Excel 文件 (覆盖配置文件)")
)

func main() {
	flag.Parse()

	// .env 可选，本地调试用
	_ = godotenv.Load()

	log := logger.New()

	fmt.Println("==========================================")
	fmt.Println("  运费公斤段分析系统")
	fmt.Println("==========================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Warn("加载配置失败，使用默认配置")
		cfg = config.DefaultConfig()
	}

	// 命令行参数覆盖配置
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if *seedFile != "" {
		cfg.Data.SeedFile = *seedFile
	}

	recordStore, err := buildStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("初始化存储失败")
	}
	defer recordStore.Close()

	if cfg.Data.SeedFile != "" {
		if err := loadSeedFile(cfg, recordStore, log); err != nil {
			log.WithError(err).WithField("file", cfg.Data.SeedFile).Warn("预加载数据失败")
		}
	}

	srv := server.NewServer(cfg, recordStore, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		log.WithField("port", cfg.Server.Port).Info("服务启动中")
		if err := srv.Run(addr); err != nil {
			log.WithError(err).Fatal("服务启动失败")
		}
	}()

	if !cfg.Server.DevMode {
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
}

// buildStore 按配置选择存储后端
func buildStore(cfg *config.AppConfig, log *logrus.Logger) (store.RecordStore, error) {
	switch cfg.Data.Storage {
	case "sqlite":
		dataDir, err := config.EnsureDataDir(cfg)
		if err != nil {
			return nil, err
		}
		dbPath := filepath.Join(dataDir, "freight.db")
		log.WithField("path", dbPath).Info("使用 SQLite 存储")
		return store.NewSQLiteStore(dbPath)
	default:
		log.Info("使用内存存储（进程退出后数据丢失）")
		return store.NewMemoryStore(), nil
	}
}

// loadSeedFile 启动时预加载历史数据
func loadSeedFile(cfg *config.AppConfig, recordStore store.RecordStore, log *logrus.Logger) error {
	file, err := os.Open(cfg.Data.SeedFile)
	if err != nil {
		return err
	}
	defer file.Close()

	scheme := weightrange.SchemeByName(cfg.Business.WeightScheme)
	result, err := excel.ParseShippingRecords(file, scheme)
	if err != nil {
		return err
	}

	inserted, err := recordStore.Insert(result.Records, true)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file":       cfg.Data.SeedFile,
		"inserted":   len(inserted.Inserted),
		"duplicates": len(inserted.Duplicates),
		"skipped":    result.SkippedRows,
	}).Info("预加载数据完成")
	return nil
}

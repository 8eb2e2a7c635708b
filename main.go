// @title CreaiCoders 学习平台 API
// @version 1.0
// @description CreaiCoders 交互式编程课程的后端服务：课程内容、代码练习、测验与网络实验室。
// @termsOfService http://swagger.io/terms/

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3000
// @BasePath /

package main

import (
	"context"
	"creai_edu_backend/internal/app"
	"creai_edu_backend/internal/config"
	"creai_edu_backend/pkg/logger"
	"flag"
	"log"
)

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件目录")
	exportCatalog := flag.String("export-catalog", "", "将内置课程导出为 YAML 内容包后退出")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer logger.Log.Sync()

	// 导出完成后直接退出
	if *exportCatalog != "" {
		url, err := application.Catalog.Export(context.Background(), *exportCatalog)
		if err != nil {
			log.Fatalf("Failed to export catalog: %v", err)
		}
		log.Printf("内容包已导出: %s", url)
		return
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dushixiang/marmot/internal/collector"
	"github.com/dushixiang/marmot/internal/config"
	"github.com/dushixiang/marmot/internal/metric"
	"github.com/dushixiang/marmot/internal/report"
	"github.com/dushixiang/marmot/internal/service"
)

var (
	// 构建时通过 -ldflags 注入
	version = "dev"

	configPath string
)

func main() {
	root := &cobra.Command{
		Use:          "marmot",
		Short:        "Marmot 监控机器人 - 通过 Telegram 上报主机指标",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "/etc/marmot/config.yaml", "配置文件路径")

	root.AddCommand(runCmd(), reportCmd(), serviceCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runCmd 前台运行机器人
func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "运行监控机器人",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			mgr, err := service.NewManager(cfg)
			if err != nil {
				return err
			}
			return mgr.Run()
		},
	}
}

// reportCmd 采集一次指标并输出到终端，用于排查与验证配置
func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "report [kind]",
		Short:     "采集一次指标并输出报告",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"all", "cpu", "memory", "disk", "network", "uptime", "temperature"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			kind := metric.KindAll
			if len(args) > 0 {
				kind = metric.Kind(args[0])
				if !kind.Valid() {
					return fmt.Errorf("未知的指标类别: %s", args[0])
				}
			}

			snapshot, err := collector.New(cfg.Monitor.DiskPath).Collect(context.Background(), kind)
			if err != nil {
				return err
			}

			r := report.NewAssembler(cfg.Monitor.BarWidth).Assemble(kind, snapshot)
			fmt.Print(report.RenderText(r))
			return nil
		},
	}
}

// serviceCmd 系统服务管理
func serviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "管理系统服务",
	}

	manager := func() (*service.Manager, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return service.NewManager(cfg)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "install",
			Short: "安装系统服务",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := manager()
				if err != nil {
					return err
				}
				if err := m.Install(); err != nil {
					return err
				}
				fmt.Println("服务安装成功")
				return nil
			},
		},
		&cobra.Command{
			Use:   "uninstall",
			Short: "卸载系统服务",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := manager()
				if err != nil {
					return err
				}
				if err := m.Uninstall(); err != nil {
					return err
				}
				fmt.Println("服务卸载成功")
				return nil
			},
		},
		&cobra.Command{
			Use:   "start",
			Short: "启动服务",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := manager()
				if err != nil {
					return err
				}
				return m.Start()
			},
		},
		&cobra.Command{
			Use:   "stop",
			Short: "停止服务",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := manager()
				if err != nil {
					return err
				}
				return m.Stop()
			},
		},
		&cobra.Command{
			Use:   "restart",
			Short: "重启服务",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := manager()
				if err != nil {
					return err
				}
				return m.Restart()
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "查看服务状态",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := manager()
				if err != nil {
					return err
				}
				status, err := m.Status()
				if err != nil {
					return err
				}
				fmt.Println(status)
				return nil
			},
		},
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("marmot", version)
		},
	}
}

// Package service 系统服务封装，支持 systemd/launchd/Windows 服务。
package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kardianos/service"
	"go.uber.org/zap"

	"github.com/dushixiang/marmot/internal/bot"
	"github.com/dushixiang/marmot/internal/config"
	"github.com/dushixiang/marmot/internal/logger"
)

// program 实现 service.Interface
type program struct {
	cfg    *config.Config
	cancel context.CancelFunc
	done   chan struct{}
}

// Start 启动服务
func (p *program) Start(s service.Service) error {
	log := logger.New(&p.cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	b := bot.New(p.cfg, log)

	go func() {
		defer close(p.done)
		if err := b.Run(ctx); err != nil {
			log.Error("机器人运行出错", zap.Error(err))
		}
	}()

	log.Info("Marmot 服务已启动")
	return nil
}

// Stop 停止服务
func (p *program) Stop(s service.Service) error {
	if p.cancel != nil {
		p.cancel()
	}
	if p.done != nil {
		<-p.done
	}
	return nil
}

// Manager 服务管理器
type Manager struct {
	cfg     *config.Config
	service service.Service
}

// NewManager 创建服务管理器
func NewManager(cfg *config.Config) (*Manager, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("获取可执行文件路径失败: %w", err)
	}

	svcConfig := &service.Config{
		Name:        "marmot",
		DisplayName: "Marmot Monitor Bot",
		Description: "Marmot 监控机器人 - 定时采集主机指标并通过 Telegram 上报",
		Arguments:   []string{"run", "--config", cfg.Path},
		Executable:  execPath,
		Option: service.KeyValue{
			// Linux systemd
			"Restart":            "always",
			"RestartSec":         "10",
			"StartLimitInterval": "0",
			"KillMode":           "process",

			// Windows
			"OnFailure":    "restart",
			"ResetPeriod":  86400,
			"RestartDelay": 10000,

			// 其他 Unix (upstart/launchd)
			"KeepAlive": true,
			"RunAtLoad": true,
		},
	}

	s, err := service.New(&program{cfg: cfg}, svcConfig)
	if err != nil {
		return nil, fmt.Errorf("创建服务失败: %w", err)
	}

	return &Manager{cfg: cfg, service: s}, nil
}

// Install 安装服务
func (m *Manager) Install() error {
	return m.service.Install()
}

// Uninstall 卸载服务，卸载前先停止
func (m *Manager) Uninstall() error {
	_ = m.service.Stop()
	return m.service.Uninstall()
}

// Start 启动服务
func (m *Manager) Start() error {
	return m.service.Start()
}

// Stop 停止服务
func (m *Manager) Stop() error {
	return m.service.Stop()
}

// Restart 重启服务
func (m *Manager) Restart() error {
	return m.service.Restart()
}

// Status 查看服务状态
func (m *Manager) Status() (string, error) {
	status, err := m.service.Status()
	if err != nil {
		return "", err
	}

	switch status {
	case service.StatusRunning:
		return "运行中 (Running)", nil
	case service.StatusStopped:
		return "已停止 (Stopped)", nil
	default:
		return "未知 (Unknown)", nil
	}
}

// Run 前台或服务模式运行。服务管理器控制下交给 service.Run，
// 交互模式下阻塞到收到中断信号
func (m *Manager) Run() error {
	if !service.Interactive() {
		return m.service.Run()
	}

	log := logger.New(&m.cfg.Log)
	log.Info("前台模式运行",
		zap.Int64("chatId", m.cfg.Telegram.ChatID),
		zap.Int("interval", m.cfg.Monitor.Interval))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan error, 1)
	b := bot.New(m.cfg, log)
	go func() {
		done <- b.Run(ctx)
	}()

	select {
	case <-interrupt:
		log.Info("收到中断信号，正在关闭...")
		cancel()
		<-done
	case err := <-done:
		if err != nil {
			return err
		}
	}

	log.Info("监控机器人已停止")
	return nil
}

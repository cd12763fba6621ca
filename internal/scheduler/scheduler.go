// Package scheduler 以固定间隔触发监控管道。
package scheduler

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pipeline 一次完整的采集-组装-投递流程，由调度器定时触发
type Pipeline func() error

// Scheduler 定时调度器，只有 idle（未布防）和 armed（已布防）两个状态。
// Start 布防一个按固定间隔重复触发的定时任务，Stop 撤防；单次执行失败
// 只记录日志，不影响后续触发。
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	entryID  cron.EntryID
	armed    bool
	pipeline Pipeline
	logger   *zap.Logger
}

// New 创建调度器
func New(pipeline Pipeline, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()), // 支持秒级调度
		pipeline: pipeline,
		logger:   logger,
	}
}

// Start 以固定间隔（秒）布防定时任务，idle → armed
func (s *Scheduler) Start(intervalSeconds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.armed {
		return fmt.Errorf("调度器已在运行")
	}

	if intervalSeconds <= 0 {
		intervalSeconds = 60 // 默认 60 秒
	}

	// 固定间隔语义: @every 按挂钟时间重复触发，与单次执行耗时无关
	spec := fmt.Sprintf("@every %ds", intervalSeconds)
	entryID, err := s.cron.AddFunc(spec, s.run)
	if err != nil {
		return fmt.Errorf("添加定时任务失败: %w", err)
	}

	s.entryID = entryID
	s.armed = true
	s.cron.Start()

	s.logger.Info("定时上报已启动", zap.Int("interval", intervalSeconds))
	return nil
}

// Stop 撤防并取消等待中的定时任务，armed → idle
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.armed {
		return
	}

	s.cron.Remove(s.entryID)
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.armed = false

	s.logger.Info("定时上报已停止")
}

// Armed 返回调度器是否处于布防状态
func (s *Scheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

// run 执行一次管道；失败只记录日志，调度器保持布防并按原间隔继续触发
func (s *Scheduler) run() {
	if err := s.pipeline(); err != nil {
		s.logger.Error("定时上报执行失败", zap.Error(err))
	}
}

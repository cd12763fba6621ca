// Package bot 把采集、组装、调度与投递串成一个 Telegram 机器人。
// 所有管道执行（定时上报与按需命令）都经由单消费者任务队列串行化，
// 同一时刻最多只有一次采集在进行。
package bot

import (
	"context"
	"fmt"
	"html"
	"os"
	"time"

	"github.com/jpillora/backoff"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/dushixiang/marmot/internal/collector"
	"github.com/dushixiang/marmot/internal/config"
	"github.com/dushixiang/marmot/internal/metric"
	"github.com/dushixiang/marmot/internal/notify"
	"github.com/dushixiang/marmot/internal/report"
	"github.com/dushixiang/marmot/internal/scheduler"
)

// telegramAPI Bot 用到的 Telegram 操作子集
type telegramAPI interface {
	GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]notify.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) (int, error)
}

// Collector 指标采集能力
type Collector interface {
	Collect(ctx context.Context, kind metric.Kind) (*metric.Snapshot, error)
}

// task 一次待执行的管道任务：定时上报、按需报告或 ping 探测
type task struct {
	kind      metric.Kind
	chatID    int64
	scheduled bool
	ping      string
}

// Bot 监控机器人
type Bot struct {
	cfg        *config.Config
	collector  Collector
	assembler  *report.Assembler
	api        telegramAPI
	dispatcher *notify.Dispatcher
	sched      *scheduler.Scheduler
	tasks      chan task
	logger     *zap.Logger

	pingFn func(target string) string
}

// New 按配置装配监控机器人
func New(cfg *config.Config, logger *zap.Logger) *Bot {
	client := notify.NewTelegramClient(cfg.Telegram.Token)

	channels := []notify.Channel{
		notify.NewTelegramChannel(client, cfg.Telegram.ChatID, logger),
	}
	if cfg.Mail.Enabled {
		channels = append(channels, notify.NewMailChannel(cfg.Mail))
	}

	b := &Bot{
		cfg:        cfg,
		collector:  collector.New(cfg.Monitor.DiskPath),
		assembler:  report.NewAssembler(cfg.Monitor.BarWidth),
		api:        client,
		dispatcher: notify.NewDispatcher(logger, channels...),
		tasks:      make(chan task, 16),
		logger:     logger,
		pingFn:     runPing,
	}
	b.sched = scheduler.New(b.enqueueScheduled, logger)
	return b
}

// Run 启动定时上报与命令轮询，阻塞直到 ctx 取消
func (b *Bot) Run(ctx context.Context) error {
	if err := b.sched.Start(b.cfg.Monitor.Interval); err != nil {
		return err
	}
	defer b.sched.Stop()

	var wg conc.WaitGroup
	wg.Go(func() {
		b.consume(ctx)
	})
	defer wg.Wait()

	b.logger.Info("监控机器人已启动",
		zap.Int64("chatId", b.cfg.Telegram.ChatID),
		zap.Int("interval", b.cfg.Monitor.Interval))

	// 启动后立即上报一次，首个定时触发要等一个完整间隔
	_ = b.enqueueScheduled()

	b.pollLoop(ctx)
	return nil
}

// enqueueScheduled 定时管道入队；上一轮尚未完成时跳过本轮，不排队堆积
func (b *Bot) enqueueScheduled() error {
	select {
	case b.tasks <- task{kind: metric.KindAll, scheduled: true}:
	default:
		b.logger.Warn("上一轮上报尚未完成，跳过本轮")
	}
	return nil
}

// consume 单消费者循环，串行执行所有管道任务
func (b *Bot) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-b.tasks:
			b.execute(ctx, t)
		}
	}
}

// pollLoop 长轮询拉取入站命令，拉取失败按指数退避重试
func (b *Bot) pollLoop(ctx context.Context) {
	retry := &backoff.Backoff{
		Min:    time.Second,
		Max:    30 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	var offset int64
	for {
		updates, err := b.api.GetUpdates(ctx, offset, b.cfg.Telegram.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			wait := retry.Duration()
			b.logger.Warn("拉取更新失败", zap.Error(err), zap.Duration("retryIn", wait))
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}
		retry.Reset()

		for _, update := range updates {
			offset = update.UpdateID + 1
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *notify.Message) {
	if msg == nil {
		return
	}
	cmd, ok := parseCommand(msg.Text)
	if !ok {
		return
	}

	if !b.allowed(msg.From) {
		b.logger.Debug("忽略未授权用户的命令",
			zap.String("command", cmd.name),
			zap.Int64("chatId", msg.Chat.ID))
		return
	}

	switch cmd.name {
	case "help", "start":
		b.reply(ctx, msg.Chat.ID, helpText)
	case "ping":
		if cmd.arg == "" {
			b.reply(ctx, msg.Chat.ID, "Usage: /ping &lt;host&gt;")
			return
		}
		b.enqueue(ctx, msg.Chat.ID, task{ping: cmd.arg, chatID: msg.Chat.ID})
	default:
		kind, ok := kindForCommand(cmd.name)
		if !ok {
			b.reply(ctx, msg.Chat.ID, "Unknown command. Send /help for the command list.")
			return
		}
		b.enqueue(ctx, msg.Chat.ID, task{kind: kind, chatID: msg.Chat.ID})
	}
}

// allowed 白名单为空时放行所有用户
func (b *Bot) allowed(from *notify.User) bool {
	users := b.cfg.Telegram.AllowedUsers
	if len(users) == 0 {
		return true
	}
	if from == nil {
		return false
	}
	for _, id := range users {
		if id == from.ID {
			return true
		}
	}
	return false
}

func (b *Bot) enqueue(ctx context.Context, chatID int64, t task) {
	select {
	case b.tasks <- t:
	default:
		b.logger.Warn("任务队列已满，丢弃命令")
		b.reply(ctx, chatID, "⏳ Busy right now, please try again in a moment.")
	}
}

// execute 执行一个管道任务。定时任务走投递分发器；按需任务把报告
// 直接回复到发起命令的会话，投递失败只记录日志，不重试
func (b *Bot) execute(ctx context.Context, t task) {
	if t.ping != "" {
		b.reply(ctx, t.chatID, b.pingFn(t.ping))
		return
	}

	if t.scheduled {
		b.executeScheduled(ctx)
		return
	}

	snapshot, err := b.collector.Collect(ctx, t.kind)
	if err != nil {
		b.reply(ctx, t.chatID, fmt.Sprintf("⚠️ Failed to collect metrics: %s", html.EscapeString(err.Error())))
		return
	}

	r := b.assembler.Assemble(t.kind, snapshot)
	b.reply(ctx, t.chatID, report.RenderHTML(r))
}

func (b *Bot) executeScheduled(ctx context.Context) {
	snapshot, err := b.collector.Collect(ctx, metric.KindAll)
	if err != nil {
		// 调度器保持布防，下一轮照常触发
		b.logger.Error("定时采集失败", zap.Error(err))
		return
	}

	hostname := ""
	if snapshot.Host != nil {
		hostname = snapshot.Host.Hostname
	}
	if hostname == "" {
		hostname, _ = os.Hostname()
	}

	r := b.assembler.Assemble(metric.KindAll, snapshot)
	r.Title = notify.RenderTitle(b.cfg.Monitor.TitleTemplate, hostname, snapshot.TakenAt)
	r.Icon = "" // 模板自带图标

	b.dispatcher.Dispatch(ctx, r)
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if _, err := b.api.SendMessage(ctx, chatID, text); err != nil {
		b.logger.Error("发送消息失败", zap.Int64("chatId", chatID), zap.Error(err))
	}
}

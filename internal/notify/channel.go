package notify

import (
	"context"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/dushixiang/marmot/internal/report"
)

// Channel 投递渠道
type Channel interface {
	// Name 渠道名称，用于日志
	Name() string
	// Send 投递一份报告
	Send(ctx context.Context, r *report.Report) error
}

// Dispatcher 把同一份报告分发到所有已启用的渠道
type Dispatcher struct {
	channels []Channel
	logger   *zap.Logger
}

// NewDispatcher 创建分发器
func NewDispatcher(logger *zap.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		logger:   logger,
	}
}

// Dispatch 并发投递到所有渠道；单个渠道失败只记录日志，
// 不重试，也不影响其他渠道
func (d *Dispatcher) Dispatch(ctx context.Context, r *report.Report) {
	var wg conc.WaitGroup
	for _, channel := range d.channels {
		wg.Go(func() {
			if err := channel.Send(ctx, r); err != nil {
				d.logger.Error("投递报告失败",
					zap.String("channel", channel.Name()),
					zap.Error(err))
			}
		})
	}
	wg.Wait()
}

// TelegramChannel Telegram 监控会话渠道。定时报告先发送一次，
// 之后每个周期就地编辑同一条消息；消息丢失时重新发送。
type TelegramChannel struct {
	client    *TelegramClient
	chatID    int64
	messageID int
	logger    *zap.Logger
}

// NewTelegramChannel 创建 Telegram 投递渠道
func NewTelegramChannel(client *TelegramClient, chatID int64, logger *zap.Logger) *TelegramChannel {
	return &TelegramChannel{
		client: client,
		chatID: chatID,
		logger: logger,
	}
}

func (t *TelegramChannel) Name() string {
	return "telegram"
}

func (t *TelegramChannel) Send(ctx context.Context, r *report.Report) error {
	text := report.RenderHTML(r)

	if t.messageID != 0 {
		err := t.client.EditMessage(ctx, t.chatID, t.messageID, text)
		if err == nil {
			return nil
		}
		// 监控消息可能已被删除，重新发送一条
		t.logger.Warn("编辑监控消息失败，重新发送", zap.Error(err))
	}

	messageID, err := t.client.SendMessage(ctx, t.chatID, text)
	if err != nil {
		return err
	}
	t.messageID = messageID
	return nil
}

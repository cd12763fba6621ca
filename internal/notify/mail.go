package notify

import (
	"context"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/dushixiang/marmot/internal/config"
	"github.com/dushixiang/marmot/internal/report"
)

// MailChannel 邮件投递渠道（可选）
type MailChannel struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
}

// NewMailChannel 创建邮件投递渠道
func NewMailChannel(cfg config.MailConfig) *MailChannel {
	return &MailChannel{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *MailChannel) Name() string {
	return "mail"
}

func (m *MailChannel) Send(ctx context.Context, r *report.Report) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.To...)
	msg.SetHeader("Subject", r.Title)
	// 等宽排版，进度条在邮件里才对得齐
	msg.SetBody("text/html", "<pre>"+html.EscapeString(report.RenderText(r))+"</pre>")

	return m.dialer.DialAndSend(msg)
}

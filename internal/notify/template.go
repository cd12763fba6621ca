package notify

import (
	"time"

	"github.com/valyala/fasttemplate"
)

// RenderTitle 渲染报告标题模板，支持 {hostname} 和 {time} 占位符；
// 模板非法时原样返回
func RenderTitle(template, hostname string, now time.Time) string {
	t, err := fasttemplate.NewTemplate(template, "{", "}")
	if err != nil {
		return template
	}
	return t.ExecuteString(map[string]interface{}{
		"hostname": hostname,
		"time":     now.Format("2006-01-02 15:04:05"),
	})
}

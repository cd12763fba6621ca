package report

import (
	"fmt"
	"html"
	"strings"
)

// RenderHTML 将报告渲染为 Telegram HTML 文本
func RenderHTML(r *Report) string {
	var b strings.Builder

	if r.Icon != "" {
		fmt.Fprintf(&b, "%s <b>%s</b>\n", r.Icon, html.EscapeString(r.Title))
	} else {
		fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(r.Title))
	}

	for _, section := range r.Sections {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s <b>%s</b>\n", section.Icon, html.EscapeString(section.Title))
		for _, line := range section.Lines {
			b.WriteString(html.EscapeString(line))
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n<i>Last updated: %s</i>", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	return b.String()
}

// RenderText 将报告渲染为纯文本（终端一次性输出、邮件正文）
func RenderText(r *Report) string {
	var b strings.Builder

	if r.Icon != "" {
		fmt.Fprintf(&b, "%s %s\n", r.Icon, r.Title)
	} else {
		fmt.Fprintf(&b, "%s\n", r.Title)
	}

	for _, section := range r.Sections {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", section.Icon, section.Title)
		for _, line := range section.Lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\nLast updated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	return b.String()
}

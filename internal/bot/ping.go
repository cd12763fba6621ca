package bot

import (
	"fmt"
	"html"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

const (
	pingCount   = 4
	pingTimeout = 5 * time.Second
)

// runPing 对目标主机执行 ICMP 探测并返回可直接发送的 HTML 文本
func runPing(target string) string {
	escaped := html.EscapeString(target)

	pinger, err := probing.NewPinger(target)
	if err != nil {
		return fmt.Sprintf("❌ Invalid target <code>%s</code>: %v", escaped, err)
	}

	pinger.Count = pingCount
	pinger.Timeout = pingTimeout
	pinger.Interval = 100 * time.Millisecond

	// 先尝试非特权模式（UDP），失败再回退到原始套接字
	pinger.SetPrivileged(false)
	if err := pinger.Run(); err != nil {
		pinger.SetPrivileged(true)
		if err := pinger.Run(); err != nil {
			return fmt.Sprintf("❌ Ping <code>%s</code> failed: %v", escaped, err)
		}
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return fmt.Sprintf("❌ <code>%s</code> is unreachable (%d/%d packets lost)",
			escaped, stats.PacketsSent, stats.PacketsSent)
	}

	return fmt.Sprintf("🏓 <b>Ping %s</b>\nPackets: %d/%d received (%.0f%% loss)\nRTT: min %s / avg %s / max %s",
		escaped,
		stats.PacketsRecv, stats.PacketsSent, stats.PacketLoss,
		stats.MinRtt.Round(time.Microsecond),
		stats.AvgRtt.Round(time.Microsecond),
		stats.MaxRtt.Round(time.Microsecond))
}

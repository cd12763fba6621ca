package bot

import (
	"strings"

	"github.com/dushixiang/marmot/internal/metric"
)

const helpText = `🤖 <b>Server Monitor Bot</b>

/stats - Full system report
/cpu - CPU usage
/memory - Memory usage
/disk - Disk usage and I/O
/network - Network traffic
/uptime - Host and bot uptime
/temp - Temperature sensors
/ping &lt;host&gt; - Ping a host
/help - Show this message`

// command 一条已解析的入站命令
type command struct {
	name string
	arg  string
}

// parseCommand 解析入站消息中的命令。支持群组里的 /cmd@botname 形式，
// 非命令消息返回 false
func parseCommand(text string) (command, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return command{}, false
	}

	name := strings.TrimPrefix(fields[0], "/")
	// 群组中的命令会带上 @botname 后缀
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(name)
	if name == "" {
		return command{}, false
	}

	cmd := command{name: name}
	if len(fields) > 1 {
		cmd.arg = fields[1]
	}
	return cmd, true
}

// kindForCommand 命令名到指标类别的映射
func kindForCommand(name string) (metric.Kind, bool) {
	switch name {
	case "stats", "all":
		return metric.KindAll, true
	case "cpu":
		return metric.KindCPU, true
	case "memory", "mem", "ram":
		return metric.KindMemory, true
	case "disk":
		return metric.KindDisk, true
	case "network", "net":
		return metric.KindNetwork, true
	case "uptime":
		return metric.KindUptime, true
	case "temp", "temperature":
		return metric.KindTemperature, true
	}
	return "", false
}

// Package report 将指标快照组装为分节的可读报告。组装过程不做任何 I/O，
// 报告一经组装即视为只读，直接交给投递边界。
package report

import (
	"fmt"
	"time"

	"github.com/dushixiang/marmot/internal/metric"
	"github.com/dushixiang/marmot/internal/render"
)

// 缺失的可选值渲染为显式占位符，绝不留空
const (
	placeholderUnavailable = "unavailable"
	placeholderUnknown     = "unknown"
)

// Section 报告中的一节：标题、图标和若干已格式化的行
type Section struct {
	Title string
	Icon  string
	Lines []string
}

// Report 结构化报告，组装后不再修改
type Report struct {
	Title       string
	Icon        string
	GeneratedAt time.Time
	Sections    []Section
}

// Assembler 报告组装器
type Assembler struct {
	barWidth int
}

// NewAssembler 创建报告组装器，barWidth 为进度条宽度
func NewAssembler(barWidth int) *Assembler {
	if barWidth <= 0 {
		barWidth = 10
	}
	return &Assembler{barWidth: barWidth}
}

// Assemble 按类别组装报告：all 为每个指标类别各一节，单类别只含对应一节
func (a *Assembler) Assemble(kind metric.Kind, snapshot *metric.Snapshot) *Report {
	r := &Report{
		Title:       "Server Monitor",
		Icon:        "🖥️",
		GeneratedAt: snapshot.TakenAt,
	}

	switch kind {
	case metric.KindAll:
		if snapshot.Host != nil {
			r.Sections = append(r.Sections, a.systemSection(snapshot.Host))
		}
		r.Sections = append(r.Sections, a.uptimeSection(snapshot.Uptime))
		r.Sections = append(r.Sections, a.cpuSection(snapshot.CPU))
		r.Sections = append(r.Sections, a.memorySection(snapshot.Memory))
		r.Sections = append(r.Sections, a.diskSection(snapshot.Disk))
		r.Sections = append(r.Sections, a.diskIOSection(snapshot.Disk))
		r.Sections = append(r.Sections, a.networkSection(snapshot.Network))
		if snapshot.Temperature != nil && snapshot.Temperature.Available {
			r.Sections = append(r.Sections, a.temperatureSection(snapshot.Temperature))
		}
	case metric.KindCPU:
		r.Title = "CPU Information"
		r.Icon = "🧠"
		r.Sections = append(r.Sections, a.cpuSection(snapshot.CPU))
	case metric.KindMemory:
		r.Title = "Memory Information"
		r.Icon = "💾"
		r.Sections = append(r.Sections, a.memorySection(snapshot.Memory))
	case metric.KindDisk:
		r.Title = "Disk Information"
		r.Icon = "💿"
		r.Sections = append(r.Sections, a.diskSection(snapshot.Disk))
		r.Sections = append(r.Sections, a.diskIOSection(snapshot.Disk))
	case metric.KindNetwork:
		r.Title = "Network Information"
		r.Icon = "🌐"
		r.Sections = append(r.Sections, a.networkSection(snapshot.Network))
	case metric.KindUptime:
		r.Title = "Uptime Information"
		r.Icon = "⏱️"
		r.Sections = append(r.Sections, a.uptimeSection(snapshot.Uptime))
	case metric.KindTemperature:
		r.Title = "Temperature Information"
		r.Icon = "🌡️"
		r.Sections = append(r.Sections, a.temperatureSection(snapshot.Temperature))
	}

	return r
}

func (a *Assembler) systemSection(data *metric.HostData) Section {
	return Section{
		Title: "System",
		Icon:  "🔄",
		Lines: []string{
			fmt.Sprintf("Host: %s", data.Hostname),
			fmt.Sprintf("%s %s (%s)", data.Platform, data.PlatformVersion, data.KernelArch),
		},
	}
}

func (a *Assembler) uptimeSection(data *metric.UptimeData) Section {
	section := Section{Title: "Uptime", Icon: "⏱️"}
	if data == nil {
		section.Lines = []string{fmt.Sprintf("Server: %s", placeholderUnknown)}
		return section
	}

	hostUptime := placeholderUnknown
	if data.HostKnown {
		hostUptime = render.FormatDuration(data.HostSeconds)
	}
	section.Lines = []string{
		fmt.Sprintf("Server: %s", hostUptime),
		fmt.Sprintf("Bot: %s", render.FormatDuration(data.BotSeconds)),
	}
	return section
}

func (a *Assembler) cpuSection(data *metric.CPUData) Section {
	section := Section{Title: "CPU Usage", Icon: "🧠"}
	if data == nil {
		section.Lines = []string{placeholderUnavailable}
		return section
	}

	section.Lines = append(section.Lines, fmt.Sprintf("%s %s",
		render.ProgressBar(data.UsagePercent, 100, a.barWidth),
		render.FormatPercent(data.UsagePercent)))
	section.Lines = append(section.Lines,
		fmt.Sprintf("Cores: %d logical / %d physical", data.LogicalCores, data.PhysicalCores))

	if data.Frequency != nil {
		section.Lines = append(section.Lines,
			fmt.Sprintf("Frequency: %.2f MHz (max %.2f MHz)", data.Frequency.CurrentMHz, data.Frequency.MaxMHz))
	} else {
		section.Lines = append(section.Lines, fmt.Sprintf("Frequency: %s", placeholderUnavailable))
	}
	return section
}

func (a *Assembler) memorySection(data *metric.MemoryData) Section {
	section := Section{Title: "Memory Usage", Icon: "💾"}
	if data == nil {
		section.Lines = []string{placeholderUnavailable}
		return section
	}

	section.Lines = append(section.Lines, fmt.Sprintf("%s %s",
		render.ProgressBar(data.UsagePercent, 100, a.barWidth),
		render.FormatPercent(data.UsagePercent)))
	section.Lines = append(section.Lines,
		fmt.Sprintf("RAM: %s / %s", render.FormatBytes(data.Used), render.FormatBytes(data.Total)))

	if data.SwapTotal > 0 {
		section.Lines = append(section.Lines, fmt.Sprintf("Swap: %s %s",
			render.ProgressBar(data.SwapPercent, 100, a.barWidth),
			render.FormatPercent(data.SwapPercent)))
		section.Lines = append(section.Lines,
			fmt.Sprintf("Swap: %s / %s", render.FormatBytes(data.SwapUsed), render.FormatBytes(data.SwapTotal)))
	} else {
		section.Lines = append(section.Lines, fmt.Sprintf("Swap: %s", placeholderUnavailable))
	}
	return section
}

func (a *Assembler) diskSection(data *metric.DiskData) Section {
	section := Section{Title: "Disk Usage", Icon: "💿"}
	if data == nil {
		section.Lines = []string{placeholderUnavailable}
		return section
	}

	section.Lines = append(section.Lines, fmt.Sprintf("%s %s",
		render.ProgressBar(data.UsagePercent, 100, a.barWidth),
		render.FormatPercent(data.UsagePercent)))
	section.Lines = append(section.Lines,
		fmt.Sprintf("%s: %s / %s (free %s)", data.Path,
			render.FormatBytes(data.Used), render.FormatBytes(data.Total), render.FormatBytes(data.Free)))
	return section
}

func (a *Assembler) diskIOSection(data *metric.DiskData) Section {
	section := Section{Title: "Disk I/O", Icon: "📈"}
	if data == nil || !data.IOKnown {
		section.Lines = []string{placeholderUnavailable}
		return section
	}

	section.Lines = []string{
		fmt.Sprintf("Read: %s", render.FormatBytes(data.ReadBytes)),
		fmt.Sprintf("Written: %s", render.FormatBytes(data.WriteBytes)),
	}
	return section
}

func (a *Assembler) networkSection(data *metric.NetworkData) Section {
	section := Section{Title: "Network", Icon: "🌐"}
	if data == nil {
		section.Lines = []string{placeholderUnavailable}
		return section
	}

	section.Lines = []string{
		fmt.Sprintf("Sent: %s", render.FormatBytes(data.BytesSent)),
		fmt.Sprintf("Received: %s", render.FormatBytes(data.BytesRecv)),
		fmt.Sprintf("Packets: %d out / %d in", data.PacketsSent, data.PacketsRecv),
	}
	return section
}

func (a *Assembler) temperatureSection(data *metric.TemperatureData) Section {
	section := Section{Title: "Temperatures", Icon: "🌡️"}
	if data == nil || !data.Available {
		section.Lines = []string{placeholderUnavailable}
		return section
	}

	for _, sensor := range data.Sensors {
		section.Lines = append(section.Lines,
			fmt.Sprintf("%s: %.1f°C", sensor.SensorKey, sensor.Celsius))
	}
	return section
}

package report

import (
	"strings"
	"testing"
	"time"

	"github.com/dushixiang/marmot/internal/metric"
)

func fullSnapshot() *metric.Snapshot {
	return &metric.Snapshot{
		TakenAt: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		Host: &metric.HostData{
			Hostname:        "node-1",
			OS:              "linux",
			Platform:        "debian",
			PlatformVersion: "12",
			KernelArch:      "x86_64",
		},
		CPU: &metric.CPUData{
			UsagePercent:  25,
			LogicalCores:  8,
			PhysicalCores: 4,
			Frequency:     &metric.CPUFrequency{CurrentMHz: 2400, MaxMHz: 3600},
		},
		Memory: &metric.MemoryData{
			Total:        16 * 1024 * 1024 * 1024,
			Used:         8 * 1024 * 1024 * 1024,
			UsagePercent: 50,
			SwapTotal:    4 * 1024 * 1024 * 1024,
			SwapUsed:     1024 * 1024 * 1024,
			SwapPercent:  25,
		},
		Disk: &metric.DiskData{
			Path:         "/",
			Total:        500 * 1024 * 1024 * 1024,
			Used:         250 * 1024 * 1024 * 1024,
			Free:         250 * 1024 * 1024 * 1024,
			UsagePercent: 50,
			IOKnown:      true,
			ReadBytes:    1024 * 1024 * 1024,
			WriteBytes:   2 * 1024 * 1024 * 1024,
		},
		Network: &metric.NetworkData{
			BytesSent:   1536,
			BytesRecv:   1024 * 1024,
			PacketsSent: 100,
			PacketsRecv: 200,
		},
		Uptime: &metric.UptimeData{
			HostKnown:   true,
			HostSeconds: 90061,
			BotSeconds:  61,
		},
		Temperature: &metric.TemperatureData{
			Available: true,
			Sensors:   []metric.SensorReading{{SensorKey: "coretemp", Celsius: 45.5}},
		},
	}
}

func TestAssembleAll(t *testing.T) {
	r := NewAssembler(10).Assemble(metric.KindAll, fullSnapshot())

	// 每个指标类别恰好一节：系统、运行时长、CPU、内存、磁盘、磁盘IO、网络、温度
	if len(r.Sections) != 8 {
		t.Fatalf("全量报告应包含 8 节，实际为 %d", len(r.Sections))
	}

	wantTitles := []string{"System", "Uptime", "CPU Usage", "Memory Usage", "Disk Usage", "Disk I/O", "Network", "Temperatures"}
	for i, want := range wantTitles {
		if r.Sections[i].Title != want {
			t.Errorf("第 %d 节标题 = %q, want %q", i, r.Sections[i].Title, want)
		}
	}
}

func TestAssembleSingleKind(t *testing.T) {
	snapshot := fullSnapshot()

	r := NewAssembler(10).Assemble(metric.KindCPU, snapshot)
	if len(r.Sections) != 1 {
		t.Fatalf("CPU 报告应只包含 1 节，实际为 %d", len(r.Sections))
	}
	if r.Sections[0].Title != "CPU Usage" {
		t.Errorf("节标题 = %q, want %q", r.Sections[0].Title, "CPU Usage")
	}
}

func TestAssembleTemperatureOmittedWhenUnavailable(t *testing.T) {
	snapshot := fullSnapshot()
	snapshot.Temperature = &metric.TemperatureData{Available: false}

	r := NewAssembler(10).Assemble(metric.KindAll, snapshot)
	for _, section := range r.Sections {
		if section.Title == "Temperatures" {
			t.Error("无传感器时全量报告不应包含温度节")
		}
	}
}

func TestAssemblePlaceholders(t *testing.T) {
	snapshot := fullSnapshot()
	snapshot.CPU.Frequency = nil
	snapshot.Uptime.HostKnown = false
	snapshot.Disk.IOKnown = false
	snapshot.Memory.SwapTotal = 0

	r := NewAssembler(10).Assemble(metric.KindAll, snapshot)
	text := RenderText(r)

	if !strings.Contains(text, "Frequency: unavailable") {
		t.Error("缺失的 CPU 频率应渲染为 unavailable 占位符")
	}
	if !strings.Contains(text, "Server: unknown") {
		t.Error("缺失的主机运行时长应渲染为 unknown 占位符")
	}
	if !strings.Contains(text, "Read:") {
		// 磁盘 IO 不可读时整节降级为占位符
		if !strings.Contains(text, "unavailable") {
			t.Error("缺失的磁盘 IO 应渲染为 unavailable 占位符")
		}
	}
	if !strings.Contains(text, "Swap: unavailable") {
		t.Error("缺失的交换区应渲染为 unavailable 占位符")
	}
}

func TestAssembleNoIO(t *testing.T) {
	// 组装纯内存操作，对同一快照重复组装应得到一致结果
	snapshot := fullSnapshot()
	assembler := NewAssembler(10)

	first := RenderHTML(assembler.Assemble(metric.KindAll, snapshot))
	second := RenderHTML(assembler.Assemble(metric.KindAll, snapshot))
	if first != second {
		t.Error("相同快照两次组装渲染结果应逐字节一致")
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	r := &Report{
		Title:       "Server <Monitor>",
		Icon:        "🖥️",
		GeneratedAt: time.Now(),
		Sections: []Section{
			{Title: "System", Icon: "🔄", Lines: []string{"Host: a&b"}},
		},
	}

	html := RenderHTML(r)
	if strings.Contains(html, "<Monitor>") {
		t.Error("标题中的 HTML 特殊字符应被转义")
	}
	if !strings.Contains(html, "a&amp;b") {
		t.Error("行内容中的 & 应被转义")
	}
	if !strings.Contains(html, "<b>") {
		t.Error("渲染结果应包含 Telegram HTML 标签")
	}
}

func TestRenderContainsBars(t *testing.T) {
	r := NewAssembler(10).Assemble(metric.KindMemory, fullSnapshot())
	text := RenderText(r)
	if !strings.Contains(text, "█████░░░░░") {
		t.Errorf("50%% 使用率应渲染为半满进度条，实际输出:\n%s", text)
	}
}

package collector

import (
	"context"
	"testing"
	"time"

	"github.com/go-errors/errors"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/dushixiang/marmot/internal/metric"
)

func TestCollectInvalidKind(t *testing.T) {
	c := New("/")
	if _, err := c.Collect(context.Background(), metric.Kind("gpu")); err == nil {
		t.Error("未知类别应返回错误")
	}
}

func TestCollectTemperatureUnavailable(t *testing.T) {
	// 无传感器的主机上温度采集应返回显式的不可用标记，而不是错误
	c := New("/")
	c.sensorsFn = func(ctx context.Context) ([]sensors.TemperatureStat, error) {
		return nil, errors.New("no sensors")
	}

	snapshot, err := c.Collect(context.Background(), metric.KindTemperature)
	if err != nil {
		t.Fatalf("可选信号缺失不应返回错误: %v", err)
	}
	if snapshot.Temperature == nil {
		t.Fatal("温度字段不应为 nil")
	}
	if snapshot.Temperature.Available {
		t.Error("无传感器时 Available 应为 false")
	}
}

func TestCollectTemperatureAvailable(t *testing.T) {
	c := New("/")
	c.sensorsFn = func(ctx context.Context) ([]sensors.TemperatureStat, error) {
		return []sensors.TemperatureStat{
			{SensorKey: "coretemp_core_0", Temperature: 45.5},
			{SensorKey: "coretemp_core_1", Temperature: 0}, // 零值读数应被过滤
		}, nil
	}

	snapshot, err := c.Collect(context.Background(), metric.KindTemperature)
	if err != nil {
		t.Fatalf("Collect() 失败: %v", err)
	}
	if !snapshot.Temperature.Available {
		t.Fatal("存在有效读数时 Available 应为 true")
	}
	if len(snapshot.Temperature.Sensors) != 1 {
		t.Fatalf("应保留 1 个有效读数，实际为 %d", len(snapshot.Temperature.Sensors))
	}
	if snapshot.Temperature.Sensors[0].Celsius != 45.5 {
		t.Errorf("温度读数 = %v, want 45.5", snapshot.Temperature.Sensors[0].Celsius)
	}
}

func TestCollectUptimeHostUnknown(t *testing.T) {
	// 主机运行时长不可读时降级为未知标记，进程运行时长始终存在
	c := New("/")
	c.startedAt = time.Now().Add(-90 * time.Second)
	c.hostFn = func(ctx context.Context) (*host.InfoStat, error) {
		return nil, errors.New("uptime unavailable")
	}

	snapshot, err := c.Collect(context.Background(), metric.KindUptime)
	if err != nil {
		t.Fatalf("可选信号缺失不应返回错误: %v", err)
	}
	if snapshot.Uptime == nil {
		t.Fatal("运行时长字段不应为 nil")
	}
	if snapshot.Uptime.HostKnown {
		t.Error("主机运行时长不可读时 HostKnown 应为 false")
	}
	if snapshot.Uptime.BotSeconds < 89 {
		t.Errorf("进程运行时长应始终存在，实际为 %d 秒", snapshot.Uptime.BotSeconds)
	}
}

func TestCollectUptimeHostKnown(t *testing.T) {
	c := New("/")
	c.hostFn = func(ctx context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{Hostname: "node-1", Uptime: 90061}, nil
	}

	snapshot, err := c.Collect(context.Background(), metric.KindUptime)
	if err != nil {
		t.Fatalf("Collect() 失败: %v", err)
	}
	if !snapshot.Uptime.HostKnown {
		t.Fatal("主机运行时长可读时 HostKnown 应为 true")
	}
	if snapshot.Uptime.HostSeconds != 90061 {
		t.Errorf("主机运行时长 = %d, want 90061", snapshot.Uptime.HostSeconds)
	}
}

func TestCollectCPU(t *testing.T) {
	c := New("/")

	snapshot, err := c.Collect(context.Background(), metric.KindCPU)
	if err != nil {
		t.Fatalf("CPU 采集失败: %v", err)
	}
	if snapshot.CPU == nil {
		t.Fatal("CPU 字段不应为 nil")
	}
	if snapshot.CPU.UsagePercent < 0 || snapshot.CPU.UsagePercent > 100 {
		t.Errorf("CPU 使用率应位于 [0,100]，实际为 %v", snapshot.CPU.UsagePercent)
	}
	// 只请求 CPU 时不应采集其他类别
	if snapshot.Memory != nil || snapshot.Disk != nil || snapshot.Network != nil {
		t.Error("单类别采集不应附带其他类别数据")
	}
}

func TestCollectMemoryInvariant(t *testing.T) {
	c := New("/")

	snapshot, err := c.Collect(context.Background(), metric.KindMemory)
	if err != nil {
		t.Fatalf("内存采集失败: %v", err)
	}
	m := snapshot.Memory
	if m == nil {
		t.Fatal("内存字段不应为 nil")
	}
	if m.Used > m.Total {
		t.Errorf("内存 used(%d) 不应超过 total(%d)", m.Used, m.Total)
	}
	if m.SwapUsed > m.SwapTotal {
		t.Errorf("交换区 used(%d) 不应超过 total(%d)", m.SwapUsed, m.SwapTotal)
	}
}

func TestCollectIndependence(t *testing.T) {
	// 每次采集相互独立，不做缓存
	c := New("/")
	ctx := context.Background()

	first, err := c.Collect(ctx, metric.KindUptime)
	if err != nil {
		t.Fatalf("第一次采集失败: %v", err)
	}
	second, err := c.Collect(ctx, metric.KindUptime)
	if err != nil {
		t.Fatalf("第二次采集失败: %v", err)
	}
	if second.TakenAt.Before(first.TakenAt) {
		t.Error("后一次快照的时间戳不应早于前一次")
	}
}

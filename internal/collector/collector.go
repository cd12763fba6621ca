// Package collector 基于 gopsutil 采集主机系统指标。
//
// 每次调用都同步读取最新的系统计数，不做缓存；磁盘 IO 与网络流量返回
// 系统启动以来的累计值，不做差分。必选信号（CPU/内存/磁盘用量）读取
// 失败会向调用方返回错误；可选信号（温度、主机运行时长、CPU 频率、
// 磁盘 IO、交换区）读取失败时降级为显式的"不可用"标记，绝不让单个
// 可选信号拖垮整个快照。
package collector

import (
	"context"
	"time"

	"github.com/go-errors/errors"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gopsnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/dushixiang/marmot/internal/metric"
)

// SystemCollector 系统指标采集器
type SystemCollector struct {
	diskPath  string
	startedAt time.Time

	// 可选信号探测函数，便于在无对应硬件的环境下测试
	sensorsFn func(ctx context.Context) ([]sensors.TemperatureStat, error)
	hostFn    func(ctx context.Context) (*host.InfoStat, error)
	diskIOFn  func(ctx context.Context, names ...string) (map[string]disk.IOCountersStat, error)
	cpuInfoFn func(ctx context.Context) ([]cpu.InfoStat, error)
}

// New 创建系统指标采集器，diskPath 为磁盘用量统计的挂载点
func New(diskPath string) *SystemCollector {
	if diskPath == "" {
		diskPath = "/"
	}
	return &SystemCollector{
		diskPath:  diskPath,
		startedAt: time.Now(),
		sensorsFn: sensors.TemperaturesWithContext,
		hostFn:    host.InfoWithContext,
		diskIOFn:  disk.IOCountersWithContext,
		cpuInfoFn: cpu.InfoWithContext,
	}
}

// Collect 采集指定类别的指标快照
func (c *SystemCollector) Collect(ctx context.Context, kind metric.Kind) (*metric.Snapshot, error) {
	if !kind.Valid() {
		return nil, errors.Errorf("未知的指标类别: %s", kind)
	}

	snapshot := &metric.Snapshot{TakenAt: time.Now()}

	if kind == metric.KindAll {
		snapshot.Host = c.collectHost(ctx)
	}

	if kind == metric.KindAll || kind == metric.KindCPU {
		cpuData, err := c.collectCPU(ctx)
		if err != nil {
			return nil, errors.New(err)
		}
		snapshot.CPU = cpuData
	}

	if kind == metric.KindAll || kind == metric.KindMemory {
		memData, err := c.collectMemory(ctx)
		if err != nil {
			return nil, errors.New(err)
		}
		snapshot.Memory = memData
	}

	if kind == metric.KindAll || kind == metric.KindDisk {
		diskData, err := c.collectDisk(ctx)
		if err != nil {
			return nil, errors.New(err)
		}
		snapshot.Disk = diskData
	}

	if kind == metric.KindAll || kind == metric.KindNetwork {
		netData, err := c.collectNetwork(ctx)
		if err != nil {
			return nil, errors.New(err)
		}
		snapshot.Network = netData
	}

	if kind == metric.KindAll || kind == metric.KindUptime {
		snapshot.Uptime = c.collectUptime(ctx)
	}

	if kind == metric.KindAll || kind == metric.KindTemperature {
		snapshot.Temperature = c.collectTemperature(ctx)
	}

	snapshot.Clamp()
	return snapshot, nil
}

// collectHost 采集主机静态信息（可选信号）
func (c *SystemCollector) collectHost(ctx context.Context) *metric.HostData {
	info, err := c.hostFn(ctx)
	if err != nil || info == nil {
		return nil
	}
	return &metric.HostData{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelArch:      info.KernelArch,
	}
}

// collectCPU 采集 CPU 指标（必选信号）
func (c *SystemCollector) collectCPU(ctx context.Context) (*metric.CPUData, error) {
	perCore, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return nil, errors.Errorf("读取 CPU 使用率失败: %v", err)
	}

	var usage float64
	for _, p := range perCore {
		usage += p
	}
	if len(perCore) > 0 {
		usage /= float64(len(perCore))
	}

	data := &metric.CPUData{
		UsagePercent: usage,
		PerCore:      perCore,
	}

	if logical, err := cpu.CountsWithContext(ctx, true); err == nil {
		data.LogicalCores = logical
	}
	if physical, err := cpu.CountsWithContext(ctx, false); err == nil {
		data.PhysicalCores = physical
	}

	// CPU 频率是可选信号，读取失败时整体缺失
	if infos, err := c.cpuInfoFn(ctx); err == nil && len(infos) > 0 && infos[0].Mhz > 0 {
		freq := &metric.CPUFrequency{CurrentMHz: infos[0].Mhz}
		for _, info := range infos {
			if info.Mhz > freq.MaxMHz {
				freq.MaxMHz = info.Mhz
			}
		}
		data.Frequency = freq
	}

	return data, nil
}

// collectMemory 采集内存指标（必选信号，交换区可选）
func (c *SystemCollector) collectMemory(ctx context.Context) (*metric.MemoryData, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, errors.Errorf("读取内存信息失败: %v", err)
	}

	data := &metric.MemoryData{
		Total:        vm.Total,
		Used:         vm.Used,
		Available:    vm.Available,
		UsagePercent: vm.UsedPercent,
	}

	// 交换区缺失时保持零值，不视为错误
	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil && swap != nil {
		data.SwapTotal = swap.Total
		data.SwapUsed = swap.Used
		data.SwapPercent = swap.UsedPercent
	}

	return data, nil
}

// collectDisk 采集磁盘指标（用量必选，IO 计数可选）
func (c *SystemCollector) collectDisk(ctx context.Context) (*metric.DiskData, error) {
	usage, err := disk.UsageWithContext(ctx, c.diskPath)
	if err != nil {
		return nil, errors.Errorf("读取磁盘用量失败(%s): %v", c.diskPath, err)
	}

	data := &metric.DiskData{
		Path:         c.diskPath,
		Total:        usage.Total,
		Used:         usage.Used,
		Free:         usage.Free,
		UsagePercent: usage.UsedPercent,
	}

	if counters, err := c.diskIOFn(ctx); err == nil && len(counters) > 0 {
		data.IOKnown = true
		for _, counter := range counters {
			data.ReadBytes += counter.ReadBytes
			data.WriteBytes += counter.WriteBytes
		}
	}

	return data, nil
}

// collectNetwork 采集全部网卡汇总的网络指标（必选信号）
func (c *SystemCollector) collectNetwork(ctx context.Context) (*metric.NetworkData, error) {
	counters, err := gopsnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return nil, errors.Errorf("读取网络计数失败: %v", err)
	}
	if len(counters) == 0 {
		return nil, errors.New("网络计数为空")
	}

	// pernic=false 时 gopsutil 返回单条汇总记录
	return &metric.NetworkData{
		BytesSent:   counters[0].BytesSent,
		BytesRecv:   counters[0].BytesRecv,
		PacketsSent: counters[0].PacketsSent,
		PacketsRecv: counters[0].PacketsRecv,
	}, nil
}

// collectUptime 采集运行时长，主机运行时长不可读时标记为未知
func (c *SystemCollector) collectUptime(ctx context.Context) *metric.UptimeData {
	data := &metric.UptimeData{
		BotSeconds: uint64(time.Since(c.startedAt).Seconds()),
	}

	if info, err := c.hostFn(ctx); err == nil && info != nil {
		data.HostKnown = true
		data.HostSeconds = info.Uptime
	}

	return data
}

// collectTemperature 采集温度传感器读数，无传感器时标记为不可用
func (c *SystemCollector) collectTemperature(ctx context.Context) *metric.TemperatureData {
	data := &metric.TemperatureData{}

	stats, err := c.sensorsFn(ctx)
	if err != nil || len(stats) == 0 {
		return data
	}

	for _, stat := range stats {
		if stat.Temperature == 0 {
			continue
		}
		data.Sensors = append(data.Sensors, metric.SensorReading{
			SensorKey: stat.SensorKey,
			Celsius:   stat.Temperature,
		})
	}
	data.Available = len(data.Sensors) > 0

	return data
}

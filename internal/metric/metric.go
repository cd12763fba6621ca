package metric

import "time"

// Kind 指标类别
type Kind string

const (
	KindAll         Kind = "all"
	KindCPU         Kind = "cpu"
	KindMemory      Kind = "memory"
	KindDisk        Kind = "disk"
	KindNetwork     Kind = "network"
	KindUptime      Kind = "uptime"
	KindTemperature Kind = "temperature"
)

// Valid 判断是否为合法的指标类别
func (k Kind) Valid() bool {
	switch k {
	case KindAll, KindCPU, KindMemory, KindDisk, KindNetwork, KindUptime, KindTemperature:
		return true
	}
	return false
}

// HostData 主机静态信息
type HostData struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`              // 操作系统
	Platform        string `json:"platform"`        // 平台
	PlatformVersion string `json:"platformVersion"` // 平台版本
	KernelArch      string `json:"kernelArch"`      // 内核架构
}

// CPUFrequency CPU 频率（可选信号，读取失败时整体缺失）
type CPUFrequency struct {
	CurrentMHz float64 `json:"currentMhz"`
	MaxMHz     float64 `json:"maxMhz"`
}

// CPUData CPU 指标
type CPUData struct {
	UsagePercent  float64       `json:"usagePercent"`
	PerCore       []float64     `json:"perCore,omitempty"`
	LogicalCores  int           `json:"logicalCores"`
	PhysicalCores int           `json:"physicalCores"`
	Frequency     *CPUFrequency `json:"frequency,omitempty"`
}

// MemoryData 内存指标
type MemoryData struct {
	Total        uint64  `json:"total"`
	Used         uint64  `json:"used"`
	Available    uint64  `json:"available"`
	UsagePercent float64 `json:"usagePercent"`
	SwapTotal    uint64  `json:"swapTotal"`
	SwapUsed     uint64  `json:"swapUsed"`
	SwapPercent  float64 `json:"swapPercent"`
}

// DiskData 磁盘指标，IO 计数为系统启动以来的累计值
type DiskData struct {
	Path         string  `json:"path"`
	Total        uint64  `json:"total"`
	Used         uint64  `json:"used"`
	Free         uint64  `json:"free"`
	UsagePercent float64 `json:"usagePercent"`
	IOKnown      bool    `json:"ioKnown"` // 磁盘 IO 计数是否可读
	ReadBytes    uint64  `json:"readBytes"`
	WriteBytes   uint64  `json:"writeBytes"`
}

// NetworkData 网络指标，均为系统启动以来的累计值
type NetworkData struct {
	BytesSent   uint64 `json:"bytesSent"`
	BytesRecv   uint64 `json:"bytesRecv"`
	PacketsSent uint64 `json:"packetsSent"`
	PacketsRecv uint64 `json:"packetsRecv"`
}

// SensorReading 单个温度传感器读数
type SensorReading struct {
	SensorKey string  `json:"sensorKey"`
	Celsius   float64 `json:"celsius"`
}

// TemperatureData 温度指标，无传感器的主机上 Available 为 false
type TemperatureData struct {
	Available bool            `json:"available"`
	Sensors   []SensorReading `json:"sensors,omitempty"`
}

// UptimeData 运行时长指标
type UptimeData struct {
	HostKnown   bool   `json:"hostKnown"` // 主机运行时长是否可读
	HostSeconds uint64 `json:"hostSeconds"`
	BotSeconds  uint64 `json:"botSeconds"` // 进程运行时长，始终存在
}

// Snapshot 单次采集的指标快照，只包含被请求类别的数据
type Snapshot struct {
	TakenAt     time.Time        `json:"takenAt"`
	Host        *HostData        `json:"host,omitempty"`
	CPU         *CPUData         `json:"cpu,omitempty"`
	Memory      *MemoryData      `json:"memory,omitempty"`
	Disk        *DiskData        `json:"disk,omitempty"`
	Network     *NetworkData     `json:"network,omitempty"`
	Uptime      *UptimeData      `json:"uptime,omitempty"`
	Temperature *TemperatureData `json:"temperature,omitempty"`
}

// ClampPercent 将百分比收敛到 [0,100]
func ClampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ClampUsed 保证 used 不超过 total
func ClampUsed(used, total uint64) uint64 {
	if used > total {
		return total
	}
	return used
}

// Clamp 收敛快照中的配对字段，保证 used ≤ total、百分比位于 [0,100]
func (s *Snapshot) Clamp() {
	if s.CPU != nil {
		s.CPU.UsagePercent = ClampPercent(s.CPU.UsagePercent)
		for i := range s.CPU.PerCore {
			s.CPU.PerCore[i] = ClampPercent(s.CPU.PerCore[i])
		}
	}
	if s.Memory != nil {
		s.Memory.Used = ClampUsed(s.Memory.Used, s.Memory.Total)
		s.Memory.SwapUsed = ClampUsed(s.Memory.SwapUsed, s.Memory.SwapTotal)
		s.Memory.UsagePercent = ClampPercent(s.Memory.UsagePercent)
		s.Memory.SwapPercent = ClampPercent(s.Memory.SwapPercent)
	}
	if s.Disk != nil {
		s.Disk.Used = ClampUsed(s.Disk.Used, s.Disk.Total)
		s.Disk.UsagePercent = ClampPercent(s.Disk.UsagePercent)
	}
}

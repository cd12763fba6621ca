package metric

import "testing"

func TestKindValid(t *testing.T) {
	valid := []Kind{KindAll, KindCPU, KindMemory, KindDisk, KindNetwork, KindUptime, KindTemperature}
	for _, k := range valid {
		if !k.Valid() {
			t.Errorf("类别 %q 应该合法", k)
		}
	}

	for _, k := range []Kind{"", "gpu", "swap", "ALL"} {
		if k.Valid() {
			t.Errorf("类别 %q 不应该合法", k)
		}
	}
}

func TestClampPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{100.01, 100},
		{250, 100},
	}
	for _, tt := range tests {
		if got := ClampPercent(tt.in); got != tt.want {
			t.Errorf("ClampPercent(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSnapshotClamp(t *testing.T) {
	s := &Snapshot{
		CPU: &CPUData{
			UsagePercent: 120,
			PerCore:      []float64{-5, 50, 101},
		},
		Memory: &MemoryData{
			Total:        1024,
			Used:         2048,
			UsagePercent: 200,
			SwapTotal:    0,
			SwapUsed:     512,
			SwapPercent:  -1,
		},
		Disk: &DiskData{
			Total:        100,
			Used:         150,
			UsagePercent: 150,
		},
	}

	s.Clamp()

	if s.CPU.UsagePercent != 100 {
		t.Errorf("CPU 使用率应收敛到 100，实际为 %v", s.CPU.UsagePercent)
	}
	if s.CPU.PerCore[0] != 0 || s.CPU.PerCore[2] != 100 {
		t.Errorf("每核使用率应收敛到 [0,100]，实际为 %v", s.CPU.PerCore)
	}
	if s.Memory.Used > s.Memory.Total {
		t.Errorf("内存 used 不应超过 total: used=%d total=%d", s.Memory.Used, s.Memory.Total)
	}
	if s.Memory.SwapUsed > s.Memory.SwapTotal {
		t.Errorf("交换区 used 不应超过 total: used=%d total=%d", s.Memory.SwapUsed, s.Memory.SwapTotal)
	}
	if s.Memory.SwapPercent != 0 {
		t.Errorf("交换区使用率应收敛到 0，实际为 %v", s.Memory.SwapPercent)
	}
	if s.Disk.Used > s.Disk.Total {
		t.Errorf("磁盘 used 不应超过 total: used=%d total=%d", s.Disk.Used, s.Disk.Total)
	}
	if s.Disk.UsagePercent != 100 {
		t.Errorf("磁盘使用率应收敛到 100，实际为 %v", s.Disk.UsagePercent)
	}
}

func TestSnapshotClampNilSections(t *testing.T) {
	// 只包含部分类别的快照不应 panic
	s := &Snapshot{}
	s.Clamp()
}

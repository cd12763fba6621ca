package render

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestProgressBarWidth(t *testing.T) {
	// 合法输入下进度条必须恰好包含 width 个字符
	for _, width := range []int{1, 5, 10, 20} {
		for value := 0.0; value <= 100; value += 7 {
			bar := ProgressBar(value, 100, width)
			if n := utf8.RuneCountInString(bar); n != width {
				t.Errorf("ProgressBar(%v, 100, %d) 长度 = %d, want %d", value, width, n, width)
			}
		}
	}
}

func TestProgressBarFilledCount(t *testing.T) {
	// 填充字符数 = round(value/max × width)
	for value := 0.0; value <= 100; value += 2.5 {
		bar := ProgressBar(value, 100, 10)
		want := int(math.Round(value / 100 * 10))
		if got := strings.Count(bar, barFilled); got != want {
			t.Errorf("ProgressBar(%v, 100, 10) 填充数 = %d, want %d", value, got, want)
		}
	}
}

func TestProgressBarClamp(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		max   float64
		want  string
	}{
		{"负值收敛为空条", -10, 100, "░░░░░░░░░░"},
		{"超出上限收敛为满条", 150, 100, "██████████"},
		{"零上限为空条", 50, 0, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressBar(tt.value, tt.max, 10); got != tt.want {
				t.Errorf("ProgressBar(%v, %v, 10) = %q, want %q", tt.value, tt.max, got, tt.want)
			}
		})
	}
}

func TestProgressBarZeroWidth(t *testing.T) {
	if got := ProgressBar(50, 100, 0); got != "" {
		t.Errorf("宽度为 0 时应返回空字符串，实际为 %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0.0B"},
		{1, "1.0B"},
		{1023, "1023.0B"},
		{1024, "1.0KB"},
		{1536, "1.5KB"},
		{1024 * 1024, "1.0MB"},
		{5 * 1024 * 1024 * 1024, "5.0GB"},
		{2 * 1024 * 1024 * 1024 * 1024, "2.0TB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0s"},
		{1, "1s"},
		{59, "59s"},
		{60, "1m 0s"},
		{61, "1m 1s"},
		{3600, "1h 0m 0s"},
		{3661, "1h 1m 1s"},
		{86400, "1d 0h 0m 0s"},
		{90061, "1d 1h 1m 1s"}, // 1 天 1 小时 1 分 1 秒
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(42); got != "42.0%" {
		t.Errorf("FormatPercent(42) = %q, want %q", got, "42.0%")
	}
	if got := FormatPercent(7.25); got != "7.2%" && got != "7.3%" {
		t.Errorf("FormatPercent(7.25) = %q, 应保留一位小数", got)
	}
}

func TestPureFunctions(t *testing.T) {
	// 纯函数性质：相同输入两次调用结果逐字节一致
	if ProgressBar(33, 100, 10) != ProgressBar(33, 100, 10) {
		t.Error("ProgressBar 对相同输入应返回一致结果")
	}
	if FormatBytes(123456789) != FormatBytes(123456789) {
		t.Error("FormatBytes 对相同输入应返回一致结果")
	}
	if FormatDuration(987654) != FormatDuration(987654) {
		t.Error("FormatDuration 对相同输入应返回一致结果")
	}
}

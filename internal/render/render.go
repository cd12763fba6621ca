// Package render 提供纯函数的展示原语：进度条、字节和时长的人类可读格式化。
// 相同输入永远产生相同输出，无任何副作用。
package render

import (
	"fmt"
	"math"
	"strings"
)

const (
	barFilled = "█"
	barEmpty  = "░"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// ProgressBar 渲染固定宽度的文本进度条，value 超出 [0,max] 时先收敛再渲染
func ProgressBar(value, max float64, width int) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if max <= 0 || value > max {
		value = max
	}

	filled := 0
	if max > 0 {
		filled = int(math.Round(value / max * float64(width)))
	}
	if filled > width {
		filled = width
	}

	return strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled)
}

// FormatBytes 将字节数格式化为二进制单位（1024 进制），保留一位小数
func FormatBytes(n uint64) string {
	val := float64(n)
	unit := 0
	for val >= 1024 && unit < len(byteUnits)-1 {
		val /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f%s", val, byteUnits[unit])
}

// FormatDuration 将秒数格式化为由天/时/分/秒组成的时长，省略前导的零值单位
func FormatDuration(seconds uint64) string {
	if seconds == 0 {
		return "0s"
	}

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", secs))

	return strings.Join(parts, " ")
}

// FormatPercent 将百分比格式化为保留一位小数的字符串
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

package metrics

import (
	"biotech_monitor/internal/feature/marketdata/domain/entity"
)

// minVolumeHistory は出来高統計の計算に必要な90日窓の最小データ点数です。
const minVolumeHistory = 5

// recentWindow は直近出来高として保持する日数です。
const recentWindow = 5

// VolumeMetrics は直近窓（recent、5日）と平均窓（history、90日）から
// 出来高統計を計算します。
// ヘッドラインの24h変化率と対平均比は分母がゼロのとき nil になります。
// history が minVolumeHistory 未満の場合は空のメトリクスを返します。
func VolumeMetrics(recent, history []entity.PriceBar) (m entity.VolumeMetrics, current, previous int64) {
	if len(recent) == 0 || len(history) < minVolumeHistory {
		return entity.VolumeMetrics{}, 0, 0
	}

	volumes := entity.Volumes(recent)
	current = volumes[len(volumes)-1]
	previous = current
	if len(volumes) > 1 {
		previous = volumes[len(volumes)-2]
	}

	// 平均は90日窓全体の算術平均
	histVolumes := make([]float64, len(history))
	for i, b := range history {
		histVolumes[i] = float64(b.Volume)
	}
	avg := Mean(histVolumes)

	// 直近窓の日次変化率。系列内部のゼロ分母は 0.0 とする（元系列の欠損日対策）
	dailyChanges := make([]float64, 0, len(volumes)-1)
	for i := 1; i < len(volumes); i++ {
		if volumes[i-1] > 0 {
			c := (float64(volumes[i]) - float64(volumes[i-1])) / float64(volumes[i-1]) * 100
			if r := Round2(c); r != nil {
				dailyChanges = append(dailyChanges, *r)
				continue
			}
		}
		dailyChanges = append(dailyChanges, 0.0)
	}

	tail := volumes
	dates := make([]string, len(recent))
	for i, b := range recent {
		dates[i] = b.Date.Format("2006-01-02")
	}
	if len(tail) > recentWindow {
		tail = tail[len(tail)-recentWindow:]
		dates = dates[len(dates)-recentWindow:]
	}

	m = entity.VolumeMetrics{
		RecentVolumes: tail,
		VolumeDates:   dates,
		DailyChanges:  dailyChanges,
		AverageVolume: avg,
		Change24h:     PercentChange(float64(current), float64(previous)),
		VsAverage:     PercentVsAverage(float64(current), avg),
		DaysIncluded:  len(history),
	}
	return m, current, previous
}

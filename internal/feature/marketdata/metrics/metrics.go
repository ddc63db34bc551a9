// Package metrics は価格・出来高・財務系列から派生指標を計算する純粋関数を提供します。
// I/Oは行わず、取得済みの系列のみを入力に取ります。
// 表示向けの値は小数2桁に丸め、計算不能な場合は nil を返します（ゼロ除算や
// 非有限値を呼び出し側に漏らしません）。
package metrics

import "math"

// Round2 は値を小数2桁に丸めたポインタを返します。
// 非有限値（NaN/Inf)は nil になります。
func Round2(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	r := math.Round(v*100) / 100
	return &r
}

// SMA は直近 window 件の算術平均を返します。
// データ点が window 未満の場合は部分平均ではなく nil を返します。
func SMA(values []float64, window int) *float64 {
	if window <= 0 || len(values) < window {
		return nil
	}
	sum := 0.0
	for i := len(values) - window; i < len(values); i++ {
		sum += values[i]
	}
	return Round2(sum / float64(window))
}

// Mean は系列全体の算術平均を返します。空の系列は nil です。
func Mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return Round2(sum / float64(len(values)))
}

// RSI は直近 period 件の日次変化から平均利得/平均損失比を計算します。
// 終値が period+1 件未満なら nil。平均損失がちょうどゼロ（すべて上昇）の
// 場合は 100 を返してゼロ除算を回避します。
func RSI(closes []float64, period int) *float64 {
	if period <= 0 || len(closes) < period+1 {
		return nil
	}
	// 直近 period 本分の変化のみを使用
	closes = closes[len(closes)-(period+1):]

	var gains, losses float64
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		v := 100.0
		return &v
	}
	rs := avgGain / avgLoss
	return Round2(100 - 100/(1+rs))
}

// PercentChange は (current-previous)/previous×100 を返します。
// previous がゼロのときは inf ではなく nil を返します。
func PercentChange(current, previous float64) *float64 {
	if previous == 0 {
		return nil
	}
	return Round2((current - previous) / previous * 100)
}

// PercentVsAverage は (current-average)/average×100 を返します。
// average がゼロ/nil のときは nil を返します。
func PercentVsAverage(current float64, average *float64) *float64 {
	if average == nil || *average == 0 {
		return nil
	}
	return Round2((current - *average) / *average * 100)
}

// YoYGrowth は (current-prior)/|prior|×100 を返します。
// 分母に絶対値を使うことで、前年値が負でも符号が意味を保ちます。
// prior がゼロ/欠損のときは nil です。
func YoYGrowth(current, prior *float64) *float64 {
	if current == nil || prior == nil || *prior == 0 {
		return nil
	}
	return Round2((*current - *prior) / math.Abs(*prior) * 100)
}

// Ratio は分子/分母の単純な除算です。分母がゼロ/欠損なら nil を返します。
func Ratio(numerator, denominator *float64) *float64 {
	if numerator == nil || denominator == nil || *denominator == 0 {
		return nil
	}
	return Round2(*numerator / *denominator)
}

// TrailingPE は株価 / 直近4四半期EPS合計を返します。
// 連続した4四半期分のEPSがちょうど揃っている場合にのみ計算し、
// 部分データからの推定は行いません（trailing EPS も併せて返します）。
func TrailingPE(price float64, quarterlyEPS []float64) (pe, trailingEPS *float64) {
	if len(quarterlyEPS) != 4 {
		return nil, nil
	}
	sum := 0.0
	for _, e := range quarterlyEPS {
		sum += e
	}
	if sum == 0 {
		return nil, Round2(sum)
	}
	return Round2(price / sum), Round2(sum)
}

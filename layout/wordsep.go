/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package layout

import (
	"sort"

	"github.com/unidoc/pdflayout/model"
)

// wordSeparationThreshold estimates the horizontal gap that separates two
// words on the same line, as opposed to two glyphs within one word.
//
// It builds a histogram of the gap between each char and its successor in
// T2BL2R order, restricted to pairs that share vertical overlap (so they
// plausibly sit on the same line), smooths each bin with its neighbours,
// and takes the multiplier-scaled mode. Grounded on
// computeWordSeparationThreshold in the original source: a histogram of
// adjacent-item dx peaks at the typical intra-word kerning gap, and
// anything WordSeparationThresholdMult times larger than that peak is
// treated as a word break.
func (p *page) wordSeparationThreshold() float32 {
	if len(p.chars) < 2 {
		return 0
	}

	maxDx := p.meanCharW * p.tuning.MaxWordsepOverMeanCharRatio
	hist := map[int]int{}
	for i := 0; i+1 < len(p.chars); i++ {
		a := p.bbox(p.chars[i])
		b := p.bbox(p.chars[i+1])
		if a.VerticalOverlap(b) <= model.MinItemSize {
			continue
		}
		dx := round32(b.Left() - a.Right())
		if float32(dx) < p.tuning.MinAcknowledgableDistance || float32(dx) > maxDx {
			continue
		}
		hist[dx-1]++
		hist[dx]++
		hist[dx+1]++
	}
	if len(hist) == 0 {
		return 0
	}

	bins := make([]int, 0, len(hist))
	for bin := range hist {
		bins = append(bins, bin)
	}
	sort.Ints(bins)

	bestBin, bestCount := bins[0], -1
	for _, bin := range bins {
		if hist[bin] > bestCount {
			bestBin, bestCount = bin, hist[bin]
		}
	}
	return float32(bestBin) * p.tuning.WordSeparationThresholdMult
}

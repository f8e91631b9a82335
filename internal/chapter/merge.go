package chapter

import (
	"sort"

	"github.com/nguyentantai21042004/chapter-flow/internal/models"
)

const titleSeparator = ", "

// Finalize turns candidates into a chapter list: sorted by start, end times
// assigned, then same-timestamp and short-duration merges applied.
// duration is the total video length in seconds, or 0 when unknown.
func Finalize(cands []models.Candidate, duration int, opts Options) []models.Chapter {
	if len(cands) == 0 {
		return nil
	}
	opts = opts.withDefaults()

	sorted := make([]models.Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	chapters := make([]models.Chapter, len(sorted))
	for i, c := range sorted {
		chapters[i] = models.Chapter{
			Title:     c.Title,
			StartTime: c.StartTime,
			EndTime:   nextStart(sorted, i),
		}
	}

	// candidates sharing the last start all get the same end
	lastStart := sorted[len(sorted)-1].StartTime
	lastEnd := lastStart + opts.FallbackSpan
	if duration > lastStart {
		lastEnd = duration
	}
	for i := range chapters {
		if chapters[i].StartTime == lastStart {
			chapters[i].EndTime = lastEnd
		}
	}

	chapters = MergeSameTimestamp(chapters)
	return MergeShortDuration(chapters, opts.MinDuration, opts.FallbackSpan)
}

// nextStart returns the first start strictly after sorted[i].
func nextStart(sorted []models.Candidate, i int) int {
	for j := i + 1; j < len(sorted); j++ {
		if sorted[j].StartTime > sorted[i].StartTime {
			return sorted[j].StartTime
		}
	}
	return sorted[i].StartTime
}

// MergeSameTimestamp joins chapters that share a start time. Titles are kept
// in their original order; the first member's times win.
func MergeSameTimestamp(chapters []models.Chapter) []models.Chapter {
	if len(chapters) == 0 {
		return nil
	}

	sorted := make([]models.Chapter, len(chapters))
	copy(sorted, chapters)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	merged := make([]models.Chapter, 0, len(sorted))
	for _, c := range sorted {
		last := len(merged) - 1
		if last >= 0 && merged[last].StartTime == c.StartTime {
			merged[last].Title += titleSeparator + c.Title
			continue
		}
		merged = append(merged, c)
	}
	return merged
}

// MergeShortDuration folds chapters whose look-ahead duration is below
// minDuration into the open chapter before them. The look-ahead duration is
// the gap to the next chapter's start; for the last chapter it is
// fallbackSpan whatever its end. A chapter also
// folds while the open chapter spans less than minDuration, so a short leading
// chapter never stands alone. The result is a fixed point: merging it again
// returns it unchanged.
func MergeShortDuration(chapters []models.Chapter, minDuration, fallbackSpan int) []models.Chapter {
	chapters = MergeSameTimestamp(chapters)
	if len(chapters) == 0 {
		return nil
	}
	// the last chapter is never treated as short
	if fallbackSpan < minDuration {
		fallbackSpan = minDuration
	}

	var (
		result []models.Chapter
		open   = chapters[0]
	)
	for i := 1; i < len(chapters); i++ {
		c := chapters[i]
		if c.StartTime-open.StartTime < minDuration || lookAhead(chapters, i, fallbackSpan) < minDuration {
			open.Title += titleSeparator + c.Title
			open.EndTime = c.EndTime
			continue
		}
		result = append(result, open)
		open = c
	}
	return append(result, open)
}

// lookAhead is the gap to the next start. The last chapter always counts
// as fallbackSpan long, so it never folds on its own length.
func lookAhead(chapters []models.Chapter, i, fallbackSpan int) int {
	if i+1 < len(chapters) {
		return chapters[i+1].StartTime - chapters[i].StartTime
	}
	return fallbackSpan
}

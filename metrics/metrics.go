// Package metrics computes derived progress values from raw counts: reading
// goal percentages, per-category challenge progress, and pagination windows.
// Every function is pure and deterministic; none of them touch the cache or
// the network.
package metrics

// CategoryMetric is one challenge requirement bar.
type CategoryMetric struct {
	Required   int
	Completed  int
	Percentage float64
}

// GoalProgress returns the display percentage for a reading goal. Book
// progress is primary: the result is the clamped books ratio and pages are
// ignored for display. A zero book target yields 0 regardless of the other
// counts.
func GoalProgress(booksRead, pagesRead, targetBooks, targetPages int) float64 {
	return clampPercent(booksRead, targetBooks)
}

// PagesProgress returns the clamped pages percentage for a reading goal, for
// callers rendering the secondary pages bar.
func PagesProgress(pagesRead, targetPages int) float64 {
	return clampPercent(pagesRead, targetPages)
}

// ChallengeProgress returns per-category progress for a challenge. Every
// requirement category appears in the result; categories absent from
// completed count as zero. Completion beyond the requirement displays as
// 100, never more. No overall percentage is computed; aggregation across
// categories is left to the caller.
func ChallengeProgress(requirements map[string]int, completed map[string]int) map[string]CategoryMetric {
	out := make(map[string]CategoryMetric, len(requirements))
	for category, required := range requirements {
		done := completed[category]
		out[category] = CategoryMetric{
			Required:   required,
			Completed:  done,
			Percentage: clampPercent(done, required),
		}
	}
	return out
}

func clampPercent(actual, target int) float64 {
	if target <= 0 {
		return 0
	}
	if actual <= 0 {
		return 0
	}
	if actual >= target {
		return 100
	}
	return float64(actual) / float64(target) * 100
}

// PageToken is one element of a pagination window: a literal page number, or
// Ellipsis standing for a collapsed run of skipped pages.
type PageToken int

// Ellipsis marks a gap of more than one skipped page.
const Ellipsis PageToken = -1

// IsEllipsis reports whether the token is the gap marker.
func (t PageToken) IsEllipsis() bool { return t == Ellipsis }

// PaginationWindow returns the ordered page tokens to render for a paginated
// listing: page 1, lastPage, every page within spread of current, and a
// single Ellipsis wherever consecutive included pages are not adjacent. The
// result depends only on the inputs.
func PaginationWindow(current, last, spread int) []PageToken {
	if last < 1 {
		return nil
	}
	if last == 1 {
		return []PageToken{1}
	}
	if current < 1 {
		current = 1
	}
	if current > last {
		current = last
	}
	if spread < 0 {
		spread = 0
	}

	include := func(page int) bool {
		if page == 1 || page == last {
			return true
		}
		return page >= current-spread && page <= current+spread
	}

	var out []PageToken
	prev := 0
	for page := 1; page <= last; page++ {
		if !include(page) {
			continue
		}
		if page-prev > 1 {
			out = append(out, Ellipsis)
		}
		out = append(out, PageToken(page))
		prev = page
	}
	return out
}

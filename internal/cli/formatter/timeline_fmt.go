package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// SlotMinutes is the height of one timeline row.
const SlotMinutes = 30

const laneWidth = 24

// FormatWeekStrip renders the strip of days around today, bracketing the
// selected day.
func FormatWeekStrip(strip []timeline.StripDay) string {
	cells := make([]string, len(strip))
	for i, d := range strip {
		text := d.Day.Format("Mon 2")
		switch {
		case d.Selected:
			cells[i] = StyleBold.Render("[" + text + "]")
		case d.IsToday:
			cells[i] = StyleHeader.Render(" " + text + " ")
		default:
			cells[i] = Dim(" " + text + " ")
		}
	}
	return strings.Join(cells, " ")
}

// assignLanes places overlapping blocks side by side. Block i goes into the
// first lane whose previous block has ended.
func assignLanes(blocks []timeline.Block) ([]int, int) {
	lanes := make([]int, len(blocks))
	var ends []int
	for i, blk := range blocks {
		placed := false
		for l, end := range ends {
			if end <= blk.OffsetMinutes {
				lanes[i] = l
				ends[l] = blk.OffsetMinutes + blk.HeightMinutes
				placed = true
				break
			}
		}
		if !placed {
			lanes[i] = len(ends)
			ends = append(ends, blk.OffsetMinutes+blk.HeightMinutes)
		}
	}
	return lanes, len(ends)
}

// visibleRange returns the slot-aligned minute window that covers every
// block and the now marker, with one hour of margin either side.
func visibleRange(view *timeline.DayView) (int, int, bool) {
	first, last := view.TotalMinutes, 0
	for _, blk := range view.Blocks {
		first = min(first, blk.OffsetMinutes)
		last = max(last, blk.OffsetMinutes+blk.HeightMinutes)
	}
	if view.NowOffset != nil {
		first = min(first, *view.NowOffset)
		last = max(last, *view.NowOffset+1)
	}
	if last <= first {
		return 0, 0, false
	}
	first = max((first/60-1)*60, 0)
	last = min(((last+59)/60+1)*60, view.TotalMinutes)
	return first, last, true
}

// FormatTimeline renders a day as rows of SlotMinutes, one lane per set of
// overlapping sessions.
func FormatTimeline(view *timeline.DayView, loc *time.Location) string {
	from, to, ok := visibleRange(view)
	if !ok {
		return Dim("No sessions on this day.")
	}
	lanes, laneCount := assignLanes(view.Blocks)

	var b strings.Builder
	for slot := from; slot < to; slot += SlotMinutes {
		slotEnd := slot + SlotMinutes
		label := "     "
		if slot%60 == 0 {
			label = FormatClock(view.Day.Add(time.Duration(slot)*time.Minute), loc)
		}
		b.WriteString(Dim(label) + " " + Dim("│") + " ")

		cells := make([]string, laneCount)
		for l := range cells {
			cells[l] = strings.Repeat(" ", laneWidth)
		}
		for i, blk := range view.Blocks {
			if blk.OffsetMinutes >= slotEnd || blk.OffsetMinutes+blk.HeightMinutes <= slot {
				continue
			}
			text := ""
			if blk.OffsetMinutes >= slot {
				text = blockLabel(blk, loc)
			}
			cells[lanes[i]] = Fill(blk.Color, fit(text, laneWidth))
		}
		b.WriteString(strings.Join(cells, " "))

		if view.NowOffset != nil && *view.NowOffset >= slot && *view.NowOffset < slotEnd {
			b.WriteString(" " + StyleRed.Render("◀ now "+FormatClock(view.Day.Add(time.Duration(*view.NowOffset)*time.Minute), loc)))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func blockLabel(blk timeline.Block, loc *time.Location) string {
	span := FormatClock(blk.ClippedStart, loc) + "–" + FormatClock(blk.ClippedEnd, loc)
	if blk.Running {
		span = FormatClock(blk.ClippedStart, loc) + "–now"
	}
	return " " + blk.Title + " " + span
}

// fit truncates or pads s to exactly width visible cells.
func fit(s string, width int) string {
	if lipgloss.Width(s) > width {
		r := []rune(s)
		for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
			r = r[:len(r)-1]
		}
		return string(r) + "…"
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

// FormatDayView renders the strip, a header and the timeline of one day.
func FormatDayView(view *timeline.DayView, strip []timeline.StripDay, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(FormatWeekStrip(strip) + "\n\n")

	var tracked time.Duration
	for _, blk := range view.Blocks {
		tracked += blk.ClippedEnd.Sub(blk.ClippedStart)
	}
	title := view.Day.In(loc).Format("Monday, Jan 2")
	summary := Plural(len(view.Blocks), "session") + ", " + FormatDuration(tracked)
	b.WriteString(Bold(title) + "  " + Dim(summary) + "\n\n")
	b.WriteString(FormatTimeline(view, loc))
	return RenderBox("Timeline", b.String())
}

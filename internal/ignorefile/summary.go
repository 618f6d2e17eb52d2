package ignorefile

import (
	"github.com/nao1215/wpkit/internal/progress"
)

// PreviewLimit is how many entries a summary lists before eliding the rest.
const PreviewLimit = 10

// Summary is the console view of a list of entries.
type Summary struct {
	// Count is the total number of entries.
	Count int

	// Preview holds at most PreviewLimit leading entries.
	Preview []string

	// Remaining is the number of entries not in Preview.
	Remaining int
}

// Summarize builds a Summary of entries.
func Summarize(entries []string) Summary {
	n := min(len(entries), PreviewLimit)
	preview := make([]string, n)
	copy(preview, entries[:n])
	return Summary{
		Count:     len(entries),
		Preview:   preview,
		Remaining: len(entries) - n,
	}
}

// Emit reports res to sink.
func (res *Result) Emit(sink progress.Sink) {
	if len(res.Added) == 0 {
		switch {
		case res.Policy == PolicyReplace && res.Removed:
			progress.Infof(sink, "No entries selected; removed stale %s", res.Path)
		case res.Policy == PolicyReplace:
			progress.Infof(sink, "No entries selected; %s not written", res.Path)
		default:
			progress.Infof(sink, "No new files to add to %s", res.Path)
		}
		return
	}

	verb := "added"
	if res.Policy == PolicyReplace {
		verb = "written"
	}
	s := Summarize(res.Added)
	fields := progress.Fields{"path": res.Path, "count": s.Count, "remaining": s.Remaining}
	if res.DryRun {
		progress.Emitf(sink, progress.KindInfo, fields, "Dry run: %d entries would be %s to %s", s.Count, verb, res.Path)
	} else {
		progress.Emitf(sink, progress.KindSuccess, fields, "Successfully %s %d entries to %s", verb, s.Count, res.Path)
	}

	progress.Sectionf(sink, "First %d entries %s:", len(s.Preview), verb)
	for _, e := range s.Preview {
		progress.Emitf(sink, progress.KindItem, progress.Fields{"entry": e}, "%s", e)
	}
	if s.Remaining > 0 {
		progress.Emitf(sink, progress.KindInfo, progress.Fields{"remaining": s.Remaining}, "  ... and %d more", s.Remaining)
	}
}

package decoder

import (
	"encoding/json"
	"strings"
)

// Marker tokens embedded in streamed answer text. A start marker wraps a tool
// name, a result marker wraps a JSON payload. The closing delimiter is the
// next "__" after the body; the tokens never appear in ordinary prose.
const (
	startPrefix  = "__TOOL_START__"
	resultPrefix = "__TOOL_RESULT__"
	markerClose  = "__"
)

// State is the scanner's pending buffer. It holds only text that has not yet
// been classified as plain content or consumed by a marker. The zero value is
// ready to use; Scan and Finish return updated copies, so a State can be
// threaded through a loop without any shared mutation.
type State struct {
	buf string
}

// Pending reports how much unclassified text the scanner is holding.
func (s State) Pending() int {
	return len(s.buf)
}

// Scan appends one fragment to the pending buffer and extracts every event
// that is complete. Fragment boundaries carry no meaning: a marker split
// across any number of fragments decodes identically to one delivered whole.
func Scan(s State, fragment string) (State, []Event) {
	s.buf += fragment

	var events []Event
	for {
		progressed := false
		s, events, progressed = step(s, events)
		if !progressed {
			break
		}
	}
	return s, events
}

// Finish flushes whatever remains in the buffer as a final Text event. A
// truncated stream must not silently lose trailing prose, even if it looks
// like the beginning of a marker.
func Finish(s State) []Event {
	if s.buf == "" {
		return nil
	}
	return []Event{Text{Content: s.buf}}
}

// step makes at most one unit of progress: consume one complete marker, or
// flush the longest run of text that cannot still become a marker.
func step(s State, events []Event) (State, []Event, bool) {
	idx, isResult := earliestMarker(s.buf)

	if idx >= 0 {
		var (
			consumedEnd int
			ev          Event
			complete    bool
		)
		if isResult {
			ev, consumedEnd, complete = scanResult(s.buf, idx)
		} else {
			ev, consumedEnd, complete = scanStart(s.buf, idx)
		}

		if complete {
			if idx > 0 {
				events = append(events, Text{Content: s.buf[:idx]})
			}
			if ev != nil {
				events = append(events, ev)
			}
			s.buf = s.buf[consumedEnd:]
			return s, events, true
		}

		// Marker prefix seen but its span is still arriving. Text strictly
		// before it is safe to flush; everything from the prefix on waits.
		if idx > 0 {
			events = append(events, Text{Content: s.buf[:idx]})
			s.buf = s.buf[idx:]
			return s, events, true
		}
		return s, events, false
	}

	// No marker prefix in the buffer. Flush everything except a tail that
	// could still be the first bytes of a marker token.
	safe := safeFlushLen(s.buf)
	if safe > 0 {
		events = append(events, Text{Content: s.buf[:safe]})
		s.buf = s.buf[safe:]
		return s, events, true
	}
	return s, events, false
}

// earliestMarker finds the first occurrence of either marker prefix. The scan
// is anchored to the earliest position; a later clean marker never wins over
// an earlier one.
func earliestMarker(buf string) (idx int, isResult bool) {
	si := strings.Index(buf, startPrefix)
	ri := strings.Index(buf, resultPrefix)
	switch {
	case si < 0 && ri < 0:
		return -1, false
	case si < 0:
		return ri, true
	case ri < 0:
		return si, false
	case ri < si:
		return ri, true
	default:
		return si, false
	}
}

// scanStart decodes a start marker at idx. complete is false while the
// closing delimiter has not arrived yet.
func scanStart(buf string, idx int) (Event, int, bool) {
	body := buf[idx+len(startPrefix):]
	close := strings.Index(body, markerClose)
	if close < 0 {
		return nil, 0, false
	}
	name := body[:close]
	end := idx + len(startPrefix) + close + len(markerClose)
	return ToolStarted{ToolName: name}, end, true
}

// scanResult decodes a result marker at idx. The captured span runs to the
// next closing delimiter; a payload that fails to parse as JSON is dropped
// silently so the surrounding prose keeps flowing.
func scanResult(buf string, idx int) (Event, int, bool) {
	body := buf[idx+len(resultPrefix):]
	close := strings.Index(body, markerClose)
	if close < 0 {
		return nil, 0, false
	}
	raw := strings.TrimSpace(body[:close])
	end := idx + len(resultPrefix) + close + len(markerClose)

	var payload ResultPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, end, true
	}

	id := payload.Tool
	if id == "" {
		id = payload.Type
	}
	return ToolCompleted{ToolID: id, Kind: payload.Type, Payload: payload}, end, true
}

// safeFlushLen returns the longest prefix of buf that cannot be part of a
// marker still arriving. The retained tail is always a proper prefix of one
// of the marker tokens.
func safeFlushLen(buf string) int {
	max := len(resultPrefix)
	if len(startPrefix) > max {
		max = len(startPrefix)
	}
	from := len(buf) - max + 1
	if from < 0 {
		from = 0
	}
	for i := from; i < len(buf); i++ {
		tail := buf[i:]
		if strings.HasPrefix(startPrefix, tail) || strings.HasPrefix(resultPrefix, tail) {
			return i
		}
	}
	return len(buf)
}

package service

import (
	"time"

	"agentchat-cli/internal/api"
)

// SessionDisplay holds display-ready session info.
type SessionDisplay struct {
	ID       string
	Name     string
	Type     api.SessionType
	TypeIcon string
	Time     string
	Day      string
}

// DayGroup is one calendar day of sessions, newest first.
type DayGroup struct {
	Label    string
	Sessions []SessionDisplay
}

// FormatSessionRow maps a raw SessionRecord to a display-ready struct. A
// session without any timestamp is treated as active now.
func FormatSessionRow(s api.SessionRecord, now time.Time) SessionDisplay {
	at := s.LastActive()
	if at.IsZero() {
		at = now
	}
	at = at.In(now.Location())

	typeIcon := "🤖"
	if s.Type == api.SessionTeam {
		typeIcon = "👥"
	}

	return SessionDisplay{
		ID:       s.SessionID,
		Name:     s.DisplayName(),
		Type:     s.Type,
		TypeIcon: typeIcon,
		Time:     at.Format("15:04"),
		Day:      DayLabel(at, now),
	}
}

// DayLabel is "Today", "Yesterday" or a long date, in now's location.
func DayLabel(t, now time.Time) string {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	ty, tm, td := t.In(now.Location()).Date()
	day := time.Date(ty, tm, td, 0, 0, 0, 0, now.Location())

	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	}
	return day.Format("January 2, 2006")
}

// GroupByDay merges, sorts and groups sessions by calendar day. Groups keep
// the newest-first order of their sessions.
func GroupByDay(sessions []api.SessionRecord, now time.Time) []DayGroup {
	var groups []DayGroup
	index := make(map[string]int)
	for _, s := range api.MergeSessions(sessions) {
		row := FormatSessionRow(s, now)
		i, ok := index[row.Day]
		if !ok {
			i = len(groups)
			index[row.Day] = i
			groups = append(groups, DayGroup{Label: row.Day})
		}
		groups[i].Sessions = append(groups[i].Sessions, row)
	}
	return groups
}

// FindSession resolves a session by full id or unique id prefix.
func FindSession(sessions []api.SessionRecord, ref string) (api.SessionRecord, bool) {
	var match api.SessionRecord
	n := 0
	for _, s := range sessions {
		if s.SessionID == ref {
			return s, true
		}
		if ref != "" && len(ref) < len(s.SessionID) && s.SessionID[:len(ref)] == ref {
			match = s
			n++
		}
	}
	return match, n == 1
}

// ExpandedByDefault reports whether a day group starts unfolded.
func ExpandedByDefault(label string) bool {
	return label == "Today" || label == "Yesterday"
}

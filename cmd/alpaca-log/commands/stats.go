package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/alpaca-client/alpaca-go/pkg/log"
	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Sessions          map[string]*SessionStats
	Attributes        map[string]int
	ErrorKinds        map[wire.ErrorKind]int
	TransportFailures int
	NetworkErrors     int
	TotalDuration     time.Duration
	Responses         int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single transport session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	ClientID  uint32
	Hosts     map[string]struct{}
}

// AverageDuration returns the mean round trip time of all responses.
func (s *Stats) AverageDuration() time.Duration {
	if s.Responses == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Responses)
}

func newStats() *Stats {
	return &Stats{
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Sessions:          make(map[string]*SessionStats),
		Attributes:        make(map[string]int),
		ErrorKinds:        make(map[wire.ErrorKind]int),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
			ClientID:  event.ClientID,
			Hosts:     make(map[string]struct{}),
		}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}
	if event.Host != "" {
		sess.Hosts[event.Host] = struct{}{}
	}

	switch {
	case event.Request != nil:
		s.Attributes[fmt.Sprintf("%s/%d/%s", event.DeviceType, event.DeviceNumber, event.Attribute)]++
	case event.Response != nil:
		s.Responses++
		s.TotalDuration += event.Response.Duration
		if event.Response.StatusCode < 200 || event.Response.StatusCode > 203 {
			s.TransportFailures++
		} else if event.Response.ErrorNumber != 0 {
			s.ErrorKinds[event.Response.Kind()]++
		}
	case event.Error != nil:
		s.NetworkErrors++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Alpaca Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryRequest, log.CategoryResponse, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Attributes) > 0 {
		fmt.Fprintln(w, "Requests by Attribute:")
		names := make([]string, 0, len(stats.Attributes))
		for name := range stats.Attributes {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			ci, cj := stats.Attributes[names[i]], stats.Attributes[names[j]]
			if ci != cj {
				return ci > cj
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			fmt.Fprintf(w, "  %-40s %d\n", name, stats.Attributes[name])
		}
		fmt.Fprintln(w)
	}

	if stats.Responses > 0 {
		fmt.Fprintf(w, "Average Round Trip: %s\n", formatDuration(stats.AverageDuration()))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] client %d, %d events, duration %s\n",
				shortenSessionID(s.id), s.stats.ClientID, s.stats.Events, duration)
			hosts := make([]string, 0, len(s.stats.Hosts))
			for h := range s.stats.Hosts {
				hosts = append(hosts, h)
			}
			sort.Strings(hosts)
			for _, h := range hosts {
				fmt.Fprintf(w, "           Host: %s\n", h)
			}
		}
	}

	failures := stats.TransportFailures + stats.NetworkErrors
	for _, n := range stats.ErrorKinds {
		failures += n
	}
	if failures > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Failures:")
		kinds := make([]wire.ErrorKind, 0, len(stats.ErrorKinds))
		for k := range stats.ErrorKinds {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		for _, k := range kinds {
			fmt.Fprintf(w, "  %-24s %d\n", k.String()+":", stats.ErrorKinds[k])
		}
		if stats.TransportFailures > 0 {
			fmt.Fprintf(w, "  %-24s %d\n", "http-status:", stats.TransportFailures)
		}
		if stats.NetworkErrors > 0 {
			fmt.Fprintf(w, "  %-24s %d\n", "network:", stats.NetworkErrors)
		}
	}
}

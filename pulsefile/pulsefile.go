// Package pulsefile reads and writes the textual pulse-data interchange
// format: ";"-prefixed comment/header lines and "pulse_us gap_us" data
// lines, with a terminal gap_us of 0 marking end of capture.
package pulsefile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sdrcore/rfsense/pulse"
)

// File is a parsed pulse-data file: header key/value pairs (from
// ";key value" lines) plus the pulse list they describe.
type File struct {
	Headers map[string]string
	List    *pulse.List
}

// Read parses a pulse-data text stream. sampleRate seeds the returned
// List's microsecond/tick conversion; a ";rate_hz" header, if present,
// overrides it once seen.
func Read(r io.Reader, sampleRate int) (*File, error) {
	f := &File{Headers: map[string]string{}}
	sc := bufio.NewScanner(r)
	list := pulse.New(sampleRate)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ";") {
			body := strings.TrimSpace(strings.TrimPrefix(line, ";"))
			if body == "" {
				continue
			}
			parts := strings.SplitN(body, " ", 2)
			key := parts[0]
			val := ""
			if len(parts) == 2 {
				val = strings.TrimSpace(parts[1])
			}
			f.Headers[key] = val
			if key == "rate_hz" {
				if hz, err := strconv.Atoi(val); err == nil {
					list.SampleRate = hz
				}
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("pulsefile: malformed data line %q", line)
		}
		pulseUS, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("pulsefile: bad pulse width %q: %w", fields[0], err)
		}
		gapUS, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("pulsefile: bad gap width %q: %w", fields[1], err)
		}

		pulseTicks := list.MicrosToTicks(pulseUS)
		var gapTicks int
		if gapUS == 0 {
			gapTicks = pulse.InfiniteGap
		} else {
			gapTicks = list.MicrosToTicks(gapUS)
		}
		list.Append(pulseTicks, gapTicks, 0, 0, 0, 0)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	f.List = list
	return f, nil
}

// Write serialises headers then data lines in the same grammar Read
// accepts. A segment whose gap is pulse.InfiniteGap is written with
// gap_us=0; no extra terminating line is added.
func Write(w io.Writer, f *File) error {
	bw := bufio.NewWriter(w)
	for key, val := range f.Headers {
		if val == "" {
			if _, err := fmt.Fprintf(bw, ";%s\n", key); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(bw, ";%s %s\n", key, val); err != nil {
			return err
		}
	}
	for i := 0; i < f.List.Len(); i++ {
		gapUS := f.List.GapMicros(i)
		if gapUS > 1e18 {
			gapUS = 0
		}
		if _, err := fmt.Fprintf(bw, "%d %d\n", int(f.List.PulseMicros(i)), int(gapUS)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

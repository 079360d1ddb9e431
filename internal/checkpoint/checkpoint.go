// Package checkpoint persists the timestamp boundary between
// already-processed and not-yet-processed notifications.
package checkpoint

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// File stores a single Unix timestamp (fractional seconds) in a plain
// text file. Only the first whitespace-delimited token is read back.
type File struct {
	Path string
}

// Read returns the stored timestamp and true, or a zero time and false
// when no checkpoint exists yet.
func (f *File) Read() (time.Time, bool, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read state file %s: %v", f.Path, err)
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return time.Time{}, false, fmt.Errorf("state file %s is empty", f.Path)
	}
	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("state file %s holds invalid timestamp %q: %v", f.Path, fields[0], err)
	}

	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC(), true, nil
}

// Write overwrites the checkpoint with the given time.
func (f *File) Write(t time.Time) error {
	seconds := float64(t.UnixNano()) / float64(time.Second)
	value := strconv.FormatFloat(seconds, 'f', -1, 64)
	if err := os.WriteFile(f.Path, []byte(value+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write state file %s: %v", f.Path, err)
	}
	return nil
}

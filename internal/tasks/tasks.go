// internal/tasks/tasks.go
package tasks

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/poolworks/jobpool"
)

// Task kinds accepted by the demo API.
const (
	KindChecksum  = "checksum"  // sha256 hex digest of the payload
	KindWordCount = "wordcount" // number of whitespace-separated words
	KindSleep     = "sleep"     // payload is a duration, e.g. "500ms"
	KindFail      = "fail"      // always fails with the payload as message
)

var (
	ErrUnknownKind    = errors.New("unknown task kind")
	ErrInvalidPayload = errors.New("invalid task payload")
)

// Build turns a task request into a job the pool can run. Validation
// errors (unknown kind, unparseable payload) are reported here, before
// submission; errors produced by the work itself surface later through
// the job record.
func Build(kind, payload string) (jobpool.Job[string], error) {
	switch kind {
	case KindChecksum:
		return func() (string, error) {
			sum := sha256.Sum256([]byte(payload))
			return hex.EncodeToString(sum[:]), nil
		}, nil

	case KindWordCount:
		return func() (string, error) {
			return strconv.Itoa(len(strings.Fields(payload))), nil
		}, nil

	case KindSleep:
		d, err := time.ParseDuration(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: bad sleep duration %q: %v", ErrInvalidPayload, payload, err)
		}
		return func() (string, error) {
			time.Sleep(d)
			return "slept " + d.String(), nil
		}, nil

	case KindFail:
		msg := payload
		if msg == "" {
			msg = "task failed"
		}
		return func() (string, error) {
			return "", errors.New(msg)
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

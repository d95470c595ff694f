package helper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"axiapac.com/timetracker/infrastructure/filesystem"
	"axiapac.com/timetracker/timetracking/importer"
	"github.com/aws/aws-lambda-go/events"
)

// ObjectResult is the outcome of importing one uploaded file.
type ObjectResult struct {
	Bucket   string
	Key      string
	Imported int
	Failed   []importer.RowError
	Err      error
}

type Summary struct {
	Objects []ObjectResult
}

func (s Summary) HasErrors() bool {
	for _, o := range s.Objects {
		if o.Err != nil || len(o.Failed) > 0 {
			return true
		}
	}
	return false
}

// Message renders the summary for a chat channel, listing at most
// maxFailures failed rows per file.
func (s Summary) Message(maxFailures int) string {
	var b strings.Builder
	for _, o := range s.Objects {
		if o.Err != nil {
			fmt.Fprintf(&b, "%s: failed: %v\n", o.Key, o.Err)
			continue
		}
		fmt.Fprintf(&b, "%s: %d imported, %d failed\n", o.Key, o.Imported, len(o.Failed))
		for i, f := range o.Failed {
			if i == maxFailures {
				fmt.Fprintf(&b, "  ... %d more\n", len(o.Failed)-maxFailures)
				break
			}
			fmt.Fprintf(&b, "  row %d: %s\n", f.Row, f.Error)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// ImportObjects reads each CSV object named in the event and records its
// punches. A bad file does not stop the others.
func ImportObjects(ctx context.Context, files filesystem.Files, im *importer.Importer, records []events.S3EventRecord) Summary {
	var summary Summary
	for _, r := range records {
		bucket := r.S3.Bucket.Name
		key, err := url.QueryUnescape(r.S3.Object.Key)
		if err != nil {
			key = r.S3.Object.Key
		}
		result := ObjectResult{Bucket: bucket, Key: key}

		if !strings.EqualFold(pathExt(key), ".csv") {
			result.Err = fmt.Errorf("not a csv file")
			summary.Objects = append(summary.Objects, result)
			continue
		}

		var stream bytes.Buffer
		if err := files.ReadFile(ctx, bucket, key, &stream); err != nil {
			result.Err = err
			summary.Objects = append(summary.Objects, result)
			continue
		}

		imported, err := im.ImportFile(ctx, &stream)
		if err != nil {
			result.Err = err
		} else {
			result.Imported = imported.Imported
			result.Failed = imported.Failed
		}
		summary.Objects = append(summary.Objects, result)
	}

	sort.SliceStable(summary.Objects, func(i, j int) bool { return summary.Objects[i].Key < summary.Objects[j].Key })
	return summary
}

func pathExt(key string) string {
	if i := strings.LastIndex(key, "."); i >= 0 && !strings.Contains(key[i:], "/") {
		return key[i:]
	}
	return ""
}

package schedule

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-swap-service/internal/domain"
	"github.com/spec-kit/shift-swap-service/internal/events"
	"github.com/spec-kit/shift-swap-service/pkg/util/errorutil"
)

// csvFields is the column count of a schedule row:
// employee id, date, start time, end time, position.
const csvFields = 5

const maxLineBytes = 1024 * 1024

// ErrImportFailed is returned for any unreadable or unparseable schedule
// file. The message does not identify the failing row.
var ErrImportFailed = errorutil.NewDomainError("IMPORT_FAILED", "failed to process schedule file", http.StatusUnprocessableEntity, nil)

// ParseCSV reads a schedule file: a header line, which is skipped, then one
// comma separated row per shift. Fields are trimmed but not otherwise
// checked, and quoting is not supported. Blank lines are ignored. Every row
// is tagged with storeID.
func ParseCSV(ctx context.Context, r io.Reader, storeID string) ([]domain.ShiftInput, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	inputs := make([]domain.ShiftInput, 0)
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, errorutil.Wrap(ErrImportFailed, err)
		}
		if line == 1 {
			continue
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) < csvFields {
			return nil, errorutil.Wrap(ErrImportFailed, fmt.Errorf("line %d: expected %d fields, got %d", line, csvFields, len(fields)))
		}
		inputs = append(inputs, domain.ShiftInput{
			EmployeeID: strings.TrimSpace(fields[0]),
			StoreID:    storeID,
			Date:       strings.TrimSpace(fields[1]),
			StartTime:  strings.TrimSpace(fields[2]),
			EndTime:    strings.TrimSpace(fields[3]),
			Position:   strings.TrimSpace(fields[4]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errorutil.Wrap(ErrImportFailed, err)
	}
	return inputs, nil
}

// ProcessCSVUpload parses a schedule file and inserts every row as a shift
// of storeID. Either all rows are inserted or none are.
func (s *Store) ProcessCSVUpload(ctx context.Context, r io.Reader, storeID string) ([]domain.Shift, error) {
	inputs, err := ParseCSV(ctx, r, storeID)
	if err != nil {
		s.logger.Warn("schedule import failed", zap.String("store_id", storeID), zap.Error(err))
		return nil, err
	}
	created := s.BulkAddShifts(ctx, inputs)
	s.logger.Info("schedule imported", zap.String("store_id", storeID), zap.Int("rows", len(created)))
	s.publish(ctx, events.EventScheduleImported, storeID, events.ScheduleImportedPayload{
		StoreID: storeID,
		Rows:    len(created),
	})
	return created, nil
}

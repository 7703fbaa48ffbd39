package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func capture() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: ComponentApp,
		Handler:   slog.NewJSONHandler(&buf, nil),
	})
	return logger, &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var record map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &record); err != nil {
		t.Fatalf("unmarshal log record: %v", err)
	}
	return record
}

func TestLoggerStampsComponent(t *testing.T) {
	t.Run("configured component on every record", func(t *testing.T) {
		logger, buf := capture()
		logger.Info("hello", FieldRowCount, 3)

		record := lastRecord(t, buf)
		if got := record[FieldComponent]; got != ComponentApp {
			t.Errorf("component = %v, want %q", got, ComponentApp)
		}
		if got := record[FieldRowCount]; got != float64(3) {
			t.Errorf("row_count = %v, want 3", got)
		}
	})

	t.Run("WithComponent rescopes the record", func(t *testing.T) {
		logger, buf := capture()
		logger.WithComponent(ComponentWorker).Info("export")

		record := lastRecord(t, buf)
		if got := record[FieldComponent]; got != ComponentWorker {
			t.Errorf("component = %v, want %q", got, ComponentWorker)
		}
	})

	t.Run("deriving twice does not stack attributes", func(t *testing.T) {
		logger, buf := capture()
		logger.WithComponent(ComponentAMQP).WithComponent(ComponentStorage).Info("save")

		line := buf.Bytes()
		if n := bytes.Count(line, []byte(`"`+FieldComponent+`"`)); n != 1 {
			t.Fatalf("component attribute appears %d times, want 1: %s", n, line)
		}
		record := lastRecord(t, buf)
		if got := record[FieldComponent]; got != ComponentStorage {
			t.Errorf("component = %v, want %q", got, ComponentStorage)
		}
	})

	t.Run("Component reports the scope", func(t *testing.T) {
		logger, _ := capture()
		if got := logger.Component(); got != ComponentApp {
			t.Errorf("Component() = %q, want %q", got, ComponentApp)
		}
		if got := logger.WithComponent(ComponentSheets).Component(); got != ComponentSheets {
			t.Errorf("Component() = %q, want %q", got, ComponentSheets)
		}
	})
}

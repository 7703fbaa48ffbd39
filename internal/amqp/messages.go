package amqp

import (
	"encoding/json"
	"time"
)

// DatasetLoadedMessage announces that a new dataset snapshot has been
// persisted. Consumers re-read the snapshot from storage; the message
// carries only identifying metadata, never the rows themselves.
type DatasetLoadedMessage struct {
	Version     uint64    `json:"version"`
	Source      string    `json:"source"`
	RowCount    int       `json:"row_count"`
	ColumnCount int       `json:"column_count"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewDatasetLoadedMessage(version uint64, source string, rowCount, columnCount int) *DatasetLoadedMessage {
	return &DatasetLoadedMessage{
		Version:     version,
		Source:      source,
		RowCount:    rowCount,
		ColumnCount: columnCount,
		Timestamp:   time.Now(),
	}
}

func (m *DatasetLoadedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func DatasetLoadedMessageFromJSON(data []byte) (*DatasetLoadedMessage, error) {
	var m DatasetLoadedMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

package testing

import (
	"errors"

	"github.com/Alia5/hidplus/input"
)

// MockReader is a scripted input.Reader. Queued batches are returned by
// successive Read calls; connection state is set explicitly.
type MockReader struct {
	name      string
	batches   [][]input.Event
	errs      []error
	connected map[input.SourceID]bool
	closed    bool
	reads     int
}

func NewMockReader(name string) *MockReader {
	return &MockReader{name: name, connected: map[input.SourceID]bool{}}
}

// Queue appends a batch for a future Read.
func (m *MockReader) Queue(events ...input.Event) {
	m.batches = append(m.batches, events)
	m.errs = append(m.errs, nil)
}

// QueueError makes a future Read fail after returning the given events.
func (m *MockReader) QueueError(err error, events ...input.Event) {
	m.batches = append(m.batches, events)
	m.errs = append(m.errs, err)
}

// Connect marks ids as present.
func (m *MockReader) Connect(ids ...input.SourceID) {
	for _, id := range ids {
		m.connected[id] = true
	}
}

// Disconnect marks ids as gone.
func (m *MockReader) Disconnect(ids ...input.SourceID) {
	for _, id := range ids {
		delete(m.connected, id)
	}
}

// Reads returns how many times Read has been called.
func (m *MockReader) Reads() int { return m.reads }

func (m *MockReader) Closed() bool { return m.closed }

func (m *MockReader) Name() string { return m.name }

func (m *MockReader) Read() ([]input.Event, error) {
	m.reads++
	if m.closed {
		return nil, errors.New("reader closed")
	}
	if len(m.batches) == 0 {
		return nil, nil
	}
	events, err := m.batches[0], m.errs[0]
	m.batches, m.errs = m.batches[1:], m.errs[1:]
	return events, err
}

func (m *MockReader) IsConnected(id input.SourceID) bool {
	return m.connected[id]
}

func (m *MockReader) Close() error {
	m.closed = true
	return nil
}

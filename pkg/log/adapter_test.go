package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newBufferEntry(buf *bytes.Buffer) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(logger)
}

func TestBadgerLogrusAdapter_Methods(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewBadgerLogrusAdapter(newBufferEntry(&buf))

	assert.NotPanics(t, func() { adapter.Errorf("error %s", "test") })
	assert.NotPanics(t, func() { adapter.Warningf("warning %d", 42) })
	assert.NotPanics(t, func() { adapter.Infof("info %v", true) })
	assert.NotPanics(t, func() { adapter.Debugf("debug") })
	assert.Contains(t, buf.String(), "error test")
}

func TestBadgerLogrusAdapter_InfoDemotedToDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.InfoLevel)

	adapter := NewBadgerLogrusAdapter(logrus.NewEntry(logger))
	adapter.Infof("compaction chatter")

	assert.NotContains(t, buf.String(), "compaction chatter")
}

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("debug", "json", &buf)

	require.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("request_id", "abc").Info("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "hello", entry["msg"])
	require.Equal(t, "abc", entry["request_id"])
}

func TestNew_UnknownLevel(t *testing.T) {
	logger := New("verbose", "text", &bytes.Buffer{})
	require.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

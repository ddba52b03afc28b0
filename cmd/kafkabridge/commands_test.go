package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/kafkabridge/internal/kafka"
	"github.com/Gunvolt24/kafkabridge/internal/usecase"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootHelp_ListsCommands(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"serve", "send", "topics", "consume"} {
		require.True(t, strings.Contains(out, name), "help must mention %q:\n%s", name, out)
	}
}

func TestSend_InvalidBrokersIsConfigError(t *testing.T) {
	t.Setenv("BRIDGE_KAFKA_BROKERS", "not a broker")

	_, err := execute(t, "send", "--count", "3")
	require.True(t, errors.Is(err, kafka.ErrConfig), "got %v", err)
}

func TestSend_InvalidCount(t *testing.T) {
	t.Setenv("BRIDGE_KAFKA_BROKERS", "127.0.0.1:1")

	_, err := execute(t, "send", "--count", "0")
	require.ErrorIs(t, err, usecase.ErrInvalidCount)
}

func TestEnvPrefixFlag(t *testing.T) {
	t.Setenv("OTHER_KAFKA_BROKERS", "not a broker")

	_, err := execute(t, "--env-prefix", "OTHER", "topics")
	require.ErrorIs(t, err, kafka.ErrConfig)
}

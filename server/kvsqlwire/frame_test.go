package kvsqlwire

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/kvsql/internal/record"
	"github.com/tuannm99/kvsql/internal/sql/executor"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	req := ExecuteRequest{ID: 7, SQL: "SELECT * FROM users"}
	require.NoError(t, WriteFrame(&buf, req))

	var got ExecuteRequest
	require.NoError(t, ReadFrame(&buf, &got))
	require.Equal(t, req, got)
}

func TestFrameCarriesResultValues(t *testing.T) {
	var buf bytes.Buffer

	resp := ExecuteResponse{
		ID: 1,
		Result: &executor.Result{
			Columns: []string{"name", "age"},
			Rows: []map[string]record.Value{
				{"name": record.NewText("Alice"), "age": record.NewInt(30)},
			},
		},
	}
	require.NoError(t, WriteFrame(&buf, resp))

	var got ExecuteResponse
	require.NoError(t, ReadFrame(&buf, &got))
	require.Equal(t, record.NewInt(30), got.Result.Rows[0]["age"])
	require.Equal(t, record.NewText("Alice"), got.Result.Rows[0]["name"])
}

func TestReadFrameRejectsOversized(t *testing.T) {
	var buf bytes.Buffer
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], MaxFrameSize+1)
	buf.Write(hdr[:])

	var req ExecuteRequest
	require.Error(t, ReadFrame(&buf, &req))
}

func TestReadFrameRejectsEmpty(t *testing.T) {
	var buf bytes.Buffer
	var hdr [4]byte
	buf.Write(hdr[:])

	var req ExecuteRequest
	require.Error(t, ReadFrame(&buf, &req))
}

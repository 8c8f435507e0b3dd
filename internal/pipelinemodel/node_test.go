package pipelinemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/pipelinedef/internal/status"
)

func TestParseKind(t *testing.T) {
	k, st := ParseKind("ENTRY")
	require.True(t, st.Ok())
	assert.Equal(t, Entry, k)

	k, st = ParseKind("DL")
	require.True(t, st.Ok())
	assert.Equal(t, DL, k)

	k, st = ParseKind("EXIT")
	require.True(t, st.Ok())
	assert.Equal(t, Exit, k)

	_, st = ParseKind("bogus")
	assert.False(t, st.Ok())
	assert.Equal(t, status.PipelineNodeWrongKindConfiguration, st.Code())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ENTRY", Entry.String())
	assert.Equal(t, "DL", DL.String())
	assert.Equal(t, "EXIT", Exit.String())
	assert.Equal(t, "UNKNOWN", Kind(99).String())
}

func TestHasModelVersion(t *testing.T) {
	assert.False(t, NodeInfo{ModelVersion: 0}.HasModelVersion())
	assert.True(t, NodeInfo{ModelVersion: 1}.HasModelVersion())
}

package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKStatus(t *testing.T) {
	assert.True(t, OKStatus.Ok())
	assert.Equal(t, OK, OKStatus.Code())
	assert.Equal(t, "OK", OKStatus.Error())
}

func TestNewFormatsMessage(t *testing.T) {
	st := New(PipelineCycleFound, "cycle at %q", "node-a")
	require.False(t, st.Ok())
	assert.Equal(t, PipelineCycleFound, st.Code())
	assert.Equal(t, `PIPELINE_CYCLE_FOUND: cycle at "node-a"`, st.Error())
}

func TestOfBareCode(t *testing.T) {
	st := Of(ModelMissing)
	assert.Equal(t, "MODEL_MISSING", st.Error())
}

func TestWrapPreservesCauseAndCode(t *testing.T) {
	cause := errors.New("boom")
	st := Wrap(UnknownError, cause, "wrapping failure")
	assert.Equal(t, UnknownError, st.Code())
	assert.ErrorIs(t, st, cause)
	assert.Contains(t, st.Error(), "boom")
}

func TestCodeStringUnknownFallsBack(t *testing.T) {
	assert.Equal(t, "UNKNOWN_ERROR", Code(9999).String())
}

func TestFromError(t *testing.T) {
	assert.True(t, FromError(nil).Ok())

	st := FromError(Of(ModelVersionNotLoadedYet))
	assert.Equal(t, ModelVersionNotLoadedYet, st.Code())

	wrapped := FromError(errors.New("plain error"))
	assert.Equal(t, UnknownError, wrapped.Code())
}

func TestEveryCodeHasAName(t *testing.T) {
	for code := OK; code <= UnknownError; code++ {
		assert.NotEqual(t, "", code.String(), "code %d missing a name", code)
	}
}

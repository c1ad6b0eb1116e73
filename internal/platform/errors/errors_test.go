package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "unknown", Error{Kind: KindUnknown}.Error())
	assert.Equal(t, "boom", E(KindUpstream, "boom").Error())
	assert.Equal(t, "list arenas: dial refused", Wrap(KindUnavailable, stderrors.New("dial refused"), "list %s", "arenas").Error())
}

func TestWrapNilCause(t *testing.T) {
	assert.NoError(t, Wrap(KindUpstream, nil, "ignored"))
}

func TestKindOfFollowsChain(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := fmt.Errorf("create event: %w", Wrap(KindUnavailable, cause, "post"))

	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindUnknown, KindOf(stderrors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestLocalizationKey(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", EK(KindInvalidInput, " events.alert.missing_fields ", "missing"))
	require.Equal(t, "events.alert.missing_fields", LocalizationKey(err))
	assert.Empty(t, LocalizationKey(stderrors.New("plain")))
	assert.Empty(t, LocalizationKey(nil))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid", err: E(KindInvalidInput, "x"), want: http.StatusBadRequest},
		{name: "not found", err: E(KindNotFound, "x"), want: http.StatusNotFound},
		{name: "unavailable", err: E(KindUnavailable, "x"), want: http.StatusServiceUnavailable},
		{name: "upstream", err: E(KindUpstream, "x"), want: http.StatusBadGateway},
		{name: "decode", err: E(KindDecode, "x"), want: http.StatusBadGateway},
		{name: "plain", err: stderrors.New("x"), want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestKindForStatus(t *testing.T) {
	assert.Equal(t, KindNotFound, KindForStatus(http.StatusNotFound))
	assert.Equal(t, KindInvalidInput, KindForStatus(http.StatusUnprocessableEntity))
	assert.Equal(t, KindUnavailable, KindForStatus(http.StatusServiceUnavailable))
	assert.Equal(t, KindUpstream, KindForStatus(http.StatusInternalServerError))
}

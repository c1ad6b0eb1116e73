package routepath

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventPaths(t *testing.T) {
	assert.Equal(t, "/events/42", Event(42))
	assert.Equal(t, "/events/42/delete", EventDelete(42))
}

func TestEventsList(t *testing.T) {
	assert.Equal(t, "/events", EventsList(""))
	assert.Equal(t, "/events", EventsList("all"))
	assert.Equal(t, "/events?discipline=100m+Run", EventsList(" 100m Run "))
}

func TestEventsWith(t *testing.T) {
	got := EventsWith("Long Jump", url.Values{ParamEdit: {"7"}})
	assert.Equal(t, "/events?discipline=Long+Jump&edit=7", got)

	assert.Equal(t, "/events?create=1", EventsWith("all", url.Values{ParamCreate: {"1"}}))
}

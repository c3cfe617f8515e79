package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientType(t *testing.T) {
	assert.Equal(t, ClientMobile, ResolveClientType("Mobile", "Mozilla/5.0"))
	assert.Equal(t, ClientWeb, ResolveClientType("web", "okhttp/4.9"))
	assert.Equal(t, ClientMobile, ResolveClientType("", "okhttp/4.9"))
	assert.Equal(t, ClientWeb, ResolveClientType("", "Mozilla/5.0 (X11; Linux x86_64)"))
	assert.True(t, IsWebClient(ClientWeb))
}

package pages

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginPage(t *testing.T) {
	body, err := NewRenderer().Login("Example <App>", "1700000000-abc", "read  write")
	require.NoError(t, err)

	html := string(body)
	require.Contains(t, html, `name="request_id" value="1700000000-abc"`)
	require.Contains(t, html, "Example &lt;App&gt;")
	require.Contains(t, html, "<li>read</li>")
	require.Contains(t, html, "<li>write</li>")
	require.Contains(t, html, `action="/login"`)
}

func TestErrorPage(t *testing.T) {
	body, err := NewRenderer().Error("Missing required parameters", 400)
	require.NoError(t, err)
	require.Contains(t, string(body), "Missing required parameters")
	require.Contains(t, string(body), "Error 400")
}

func TestLoginErrorPage(t *testing.T) {
	body, err := NewRenderer().LoginError()
	require.NoError(t, err)
	require.Contains(t, string(body), "Sign in failed")
}

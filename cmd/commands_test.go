package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const priorityCookie = `{"current_session":{"value":"utm_source=cookieSite&utm_medium=email"}}`

func TestResolveCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "", "resolve",
		"--url", "https://www.shop.com/landing?utm_source=urlSite",
		"--referrer", "https://referrerSite.com/post",
		"--cookie", rdCookie(priorityCookie),
	)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"utm_source\": \"urlSite\",\n  \"utm_medium\": \"email\"\n}\n", out)
}

func TestResolveCommand_YAML(t *testing.T) {
	out, err := executeCommand(t, "", "resolve",
		"--url", "https://shop.com/",
		"--referrer", "https://www.google.com/",
		"--format", "yaml",
	)
	require.NoError(t, err)
	assert.Equal(t, "utm_source: google\n", out)
}

func TestResolveCommand_UnknownFormat(t *testing.T) {
	_, err := executeCommand(t, "", "resolve", "--url", "https://shop.com/", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestResolveCommand_URLRequired(t *testing.T) {
	_, err := executeCommand(t, "", "resolve")
	assert.Error(t, err)
}

func TestEnrichCommand(t *testing.T) {
	out, err := executeCommand(t, "", "enrich",
		"--url", "https://shop.com/p?utm_source=x#reviews",
		"--referrer", "https://www.google.com/",
		"--cookie", "theme=dark; "+rdCookie(`{"first_session":{"value":"gclid=G1"}}`),
	)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.com/p?utm_source=x&gclid=G1#reviews\n", out)
}

func TestEnrichCommand_NothingToAdd(t *testing.T) {
	out, err := executeCommand(t, "", "enrich", "--url", "https://shop.com/p#top")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.com/p#top\n", out)
}

func TestLinkCommand_FromConfig(t *testing.T) {
	yaml := `
widget:
  phone: "+55 (11) 98888-7777"
  message: "Olá! {title} {url}"
`
	out, err := executeCommand(t, yaml, "link",
		"--url", "https://shop.com/",
		"--referrer", "https://www.google.com/",
		"--title", "Shop",
	)
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/5511988887777?text=Ol%C3%A1!%20Shop%20https%3A%2F%2Fshop.com%2F%3Futm_source%3Dgoogle\n", out)
}

func TestLinkCommand_FlagOverrides(t *testing.T) {
	yaml := `
widget:
  phone: "111"
  message: "from config"
`
	out, err := executeCommand(t, yaml, "link",
		"--url", "https://shop.com/",
		"--referrer", "https://www.google.com/",
		"--phone", "222",
		"--message", "{url}",
		"--no-utm",
	)
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/222?text=https%3A%2F%2Fshop.com%2F\n", out)
}

func TestLinkCommand_PhoneRequired(t *testing.T) {
	_, err := executeCommand(t, "", "link", "--url", "https://shop.com/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widget.phone is required")
}

func TestLinkCommand_PhoneWithoutDigits(t *testing.T) {
	_, err := executeCommand(t, "", "link", "--url", "https://shop.com/", "--phone", "call us")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone number is required")
}

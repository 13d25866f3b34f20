package watchers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCompose = `version: "3"
services:
  squash_wednesday:
    image: touplitoui/wanaplay-booker-bot
    environment:
      - wanaplay_login=john
      - wanaplay_password=secret
    command: wanaplay book -c 18:20 -w wednesday
`

func writeCompose(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docker-compose.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCompose(t *testing.T) {
	c, err := LoadCompose(writeCompose(t, sampleCompose))
	require.NoError(t, err)

	assert.Equal(t, "3", c.Version)
	require.Contains(t, c.Services, "squash_wednesday")
	svc := c.Services["squash_wednesday"]
	assert.Equal(t, "touplitoui/wanaplay-booker-bot", svc.Image)
	assert.Equal(t, "wanaplay book -c 18:20 -w wednesday", svc.Command)
	assert.Len(t, svc.Environment, 2)
}

func TestComposeRoundTrip(t *testing.T) {
	c, err := LoadCompose(writeCompose(t, sampleCompose))
	require.NoError(t, err)

	w := Watcher{Name: "squash_friday", CourtTime: "20:40", WeekDay: "friday"}
	c.Add(w.Name, ServiceFor(w, "touplitoui/wanaplay-booker-bot", "john", "secret"))
	require.NoError(t, c.Save())

	reloaded, err := LoadCompose(c.Path())
	require.NoError(t, err)
	assert.Equal(t, []string{"squash_friday", "squash_wednesday"}, reloaded.Names())

	got, err := WatcherFromService("squash_friday", reloaded.Services["squash_friday"])
	require.NoError(t, err)
	assert.Equal(t, "20:40", got.CourtTime)
	assert.Equal(t, "friday", got.WeekDay)
	assert.Equal(t, StatusCreated, got.Status)
}

func TestComposeRemove(t *testing.T) {
	c, err := LoadCompose(writeCompose(t, sampleCompose))
	require.NoError(t, err)

	require.NoError(t, c.Remove("squash_wednesday"))
	assert.Empty(t, c.Services)

	assert.Error(t, c.Remove("nope"))
}

func TestWatcherFromServiceRejectsUnknownCommand(t *testing.T) {
	_, err := WatcherFromService("other", Service{Command: "sleep infinity"})
	assert.Error(t, err)
}

func TestServiceForInjectsCredentials(t *testing.T) {
	w := Watcher{Name: "squash_monday", CourtTime: "09:40", WeekDay: "monday"}
	svc := ServiceFor(w, "img", "john", "secret")
	assert.Equal(t, "img", svc.Image)
	assert.Contains(t, svc.Environment, "wanaplay_login=john")
	assert.Contains(t, svc.Environment, "wanaplay_password=secret")
	assert.Equal(t, "wanaplay book -c 09:40 -w monday", svc.Command)
}

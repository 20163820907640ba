package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/packethost/pkg/log"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"

	"github.com/opsmesh/fabinv/mo"
)

func TestMain(m *testing.M) {
	os.Setenv("PACKET_ENV", "test")
	os.Setenv("PACKET_VERSION", "0")
	os.Setenv("ROLLBAR_DISABLE", "1")
	os.Setenv("ROLLBAR_TOKEN", "1")

	os.Exit(m.Run())
}

func testSession(t *testing.T) *Session {
	t.Helper()

	s, err := New(log.Test(t, "github.com/opsmesh/fabinv"), Config{
		URL:      "https://switch1.example.com",
		Username: "admin",
		Password: "secret",
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)
	gock.InterceptClient(s.Client())
	return s
}

func TestNew(t *testing.T) {
	assert := require.New(t)

	_, err := New(log.Test(t, "github.com/opsmesh/fabinv"), Config{})
	assert.Error(err)

	_, err = New(log.Test(t, "github.com/opsmesh/fabinv"), Config{URL: "https://switch1"})
	assert.NoError(err)
}

func TestLogin(t *testing.T) {
	assert := require.New(t)
	defer gock.Off()

	gock.New("https://switch1.example.com").
		Post("/api/aaaLogin.json").
		Reply(200).
		JSON(map[string]interface{}{
			"imdata": []map[string]interface{}{
				{"aaaLogin": map[string]interface{}{
					"attributes": map[string]string{"token": "tok-123"},
				}},
			},
		})

	s := testSession(t)
	assert.NoError(s.Login(context.Background()))
	assert.Equal("tok-123", s.token)
	assert.True(gock.IsDone())
}

func TestLoginBadResponse(t *testing.T) {
	assert := require.New(t)
	defer gock.Off()

	gock.New("https://switch1.example.com").
		Post("/api/aaaLogin.json").
		Reply(200).
		JSON(map[string]interface{}{"imdata": []map[string]interface{}{}})

	s := testSession(t)
	assert.Error(s.Login(context.Background()))
}

func TestGet(t *testing.T) {
	assert := require.New(t)
	defer gock.Off()

	gock.New("https://switch1.example.com").
		Get("/api/node/class/fabricNode.json").
		MatchParam("query-target", "self").
		Reply(200).
		JSON(map[string]interface{}{
			"imdata": []map[string]interface{}{
				{"fabricNode": map[string]interface{}{
					"attributes": map[string]string{
						"dn":   "topology/pod-1/node-101",
						"role": "leaf",
					},
				}},
			},
		})

	s := testSession(t)
	records, err := s.Get(context.Background(), "/api/node/class/fabricNode.json?query-target=self")
	assert.NoError(err)
	assert.Len(records, 1)
	assert.Equal("fabricNode", records[0].Class)
	assert.Equal("topology/pod-1/node-101", records[0].DN())
	assert.True(gock.IsDone())
}

func TestGetAPIError(t *testing.T) {
	assert := require.New(t)
	defer gock.Off()

	gock.New("https://switch1.example.com").
		Get("/api/mo/sys.json").
		Reply(400).
		JSON(map[string]interface{}{
			"imdata": []map[string]interface{}{
				{"error": map[string]interface{}{
					"attributes": map[string]string{"code": "104", "text": "unknown class"},
				}},
			},
		})

	s := testSession(t)
	_, err := s.Get(context.Background(), "/api/mo/sys.json")
	assert.Error(err)

	apiErr, ok := err.(*mo.APIError)
	assert.True(ok)
	assert.Equal("104", apiErr.Code)
}

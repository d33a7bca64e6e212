package api_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/realtime"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func TestUploadNotifiesRoomSubscribers(t *testing.T) {
	srv, client, _ := setupServer(t)
	ctx := t.Context()

	box, err := client.CreateBox(ctx, "live")
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, err := websocket.Dial(wsURL, "", srv.URL)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, json.NewEncoder(conn).Encode(map[string]string{
		"type": "join",
		"box":  box.ID,
	}))

	decoder := json.NewDecoder(conn)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var joined realtime.Event
	require.NoError(t, decoder.Decode(&joined))
	require.Equal(t, "joined", joined.Type)
	require.Equal(t, box.ID, joined.Box)

	file, err := client.UploadFile(ctx, box.ID, "fresh.txt", strings.NewReader("payload"))
	require.NoError(t, err)

	var ev realtime.Event
	require.NoError(t, decoder.Decode(&ev))
	require.Equal(t, "file_added", ev.Type)
	require.Equal(t, box.ID, ev.Box)

	payload, ok := ev.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, file.ID, payload["id"])
	require.Equal(t, "fresh.txt", payload["original_name"])
}

func TestUploadToOtherBoxStaysQuiet(t *testing.T) {
	srv, client, _ := setupServer(t)
	ctx := t.Context()

	mine, err := client.CreateBox(ctx, "mine")
	require.NoError(t, err)
	other, err := client.CreateBox(ctx, "other")
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, err := websocket.Dial(wsURL, "", srv.URL)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, json.NewEncoder(conn).Encode(map[string]string{
		"type": "join",
		"box":  mine.ID,
	}))

	decoder := json.NewDecoder(conn)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var joined realtime.Event
	require.NoError(t, decoder.Decode(&joined))
	require.Equal(t, "joined", joined.Type)

	_, err = client.UploadFile(ctx, other.ID, "elsewhere.txt", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	var ev realtime.Event
	require.Error(t, decoder.Decode(&ev), "no event should arrive for another box")
}

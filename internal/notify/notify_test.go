package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/leads/internal/model"
	"go.uber.org/goleak"
)

type recordingNotifier struct {
	events []Event
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, e Event) error {
	n.events = append(n.events, e)
	return n.err
}

func testEvent() Event {
	return Event{
		Type:          EventStatusChanged,
		RequirementID: "01HRZ5N2X8J4K6M8P0R2T4V6X8",
		Status:        model.StatusContacted,
		At:            time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestMultiDeliversToEveryNotifier(t *testing.T) {
	logger, hook := test.NewNullLogger()
	failing := &recordingNotifier{err: errors.New("broker is down")}
	healthy := &recordingNotifier{}

	err := Multi(logger, failing, healthy).Notify(context.Background(), testEvent())
	require.NoError(t, err, "delivery failures must not be reported back")
	require.Len(t, failing.events, 1)
	require.Len(t, healthy.events, 1, "failure of one notifier must not stop the others")

	require.Len(t, hook.Entries, 1, "delivery failure must be logged")
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestPublishing(t *testing.T) {
	e := testEvent()

	msg, err := Publishing(e)
	require.NoError(t, err)
	require.Equal(t, "application/json", msg.ContentType)
	require.Equal(t, amqp.Persistent, msg.DeliveryMode)
	require.Equal(t, string(EventStatusChanged), msg.Type)
	require.Equal(t, e.RequirementID, msg.MessageId)
	require.JSONEq(t, `{
		"type": "requirement.status_changed",
		"requirementId": "01HRZ5N2X8J4K6M8P0R2T4V6X8",
		"status": "Contacted",
		"at": "2024-03-05T10:00:00Z"
	}`, string(msg.Body))
}

func TestHubBroadcastsToSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger, _ := test.NewNullLogger()
	hub := NewHub(logger)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn)
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "failed to subscribe")

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 5*time.Second, 10*time.Millisecond)

	t.Log("subscriber receives event")
	{
		require.NoError(t, hub.Notify(ctx, testEvent()))

		var received Event
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		require.NoError(t, conn.ReadJSON(&received))
		require.Equal(t, testEvent(), received)
	}

	t.Log("subscriber leaves")
	{
		err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		require.NoError(t, err)
		require.NoError(t, conn.Close())
		require.Eventually(t, func() bool { return hub.Clients() == 0 }, 5*time.Second, 10*time.Millisecond)
	}

	cancel()
	<-stopped
	srv.Close()

	t.Log("notify after shutdown is dropped")
	{
		require.NoError(t, hub.Notify(context.Background(), testEvent()))
	}
}

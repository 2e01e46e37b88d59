package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/fleetwatch/internal/pkg/constants"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	natspkg "github.com/piresc/fleetwatch/internal/pkg/nats"
	"github.com/piresc/fleetwatch/internal/pkg/nats/natstest"
	"github.com/piresc/fleetwatch/services/simulator/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publish(t *testing.T, client *natspkg.Client, subject string, payload interface{}) {
	t.Helper()
	var data []byte
	switch p := payload.(type) {
	case []byte:
		data = p
	default:
		var err error
		data, err = json.Marshal(p)
		require.NoError(t, err)
	}
	_, err := client.PublishWithOptions(context.Background(), natspkg.PublishOptions{Subject: subject, Data: data})
	require.NoError(t, err)
}

func TestSubjectKey(t *testing.T) {
	assert.Equal(t, "trip-1", subjectKey("fleet.trip.cancelled.trip-1"))
	assert.Equal(t, "", subjectKey("fleet.trip.cancelled."))
	assert.Equal(t, "", subjectKey("nodots"))
}

func TestSimulatorHandler_Consumers(t *testing.T) {
	_, client := natstest.RunJetStreamWithStreams(t)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockSimulatorUC(ctrl)

	started := make(chan models.Trip, 1)
	cancelled := make(chan string, 2)
	uc.EXPECT().StartTrip(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, trip models.Trip) error {
			started <- trip
			return nil
		}).Times(1)
	uc.EXPECT().CancelTrip(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tripID string) error {
			cancelled <- tripID
			return nil
		}).Times(2)

	h := NewSimulatorHandler(uc, client, nil)
	require.NoError(t, h.InitNATSConsumers())
	t.Cleanup(h.Stop)

	// invalid coordinate: terminated, never retried
	publish(t, client, fmt.Sprintf(constants.SubjectTripCreated, "driver-1"), models.Trip{
		ID: "bad", DriverID: "driver-1", CarID: "car-1",
		Start: models.NewCoordinate(0, 200), Destination: models.NewCoordinate(0, 0),
	})
	// driver ID that is not a single subject token: terminated
	publish(t, client, fmt.Sprintf(constants.SubjectTripCreated, "driver-1"), models.Trip{
		ID: "dotted", DriverID: "fleet.d1", CarID: "car-1",
		Start: models.NewCoordinate(0, 0), Destination: models.NewCoordinate(0, 1),
	})
	// undecodable: terminated without reaching the use case
	publish(t, client, fmt.Sprintf(constants.SubjectTripCreated, "driver-1"), []byte("{oops"))

	good := models.Trip{
		ID: "trip-1", DriverID: "driver-1", CarID: "car-1",
		Start: models.NewCoordinate(40.7128, -74.006), Destination: models.NewCoordinate(40.7306, -73.9352),
	}
	publish(t, client, fmt.Sprintf(constants.SubjectTripCreated, "driver-1"), good)

	select {
	case trip := <-started:
		assert.Equal(t, "trip-1", trip.ID)
	case <-time.After(3 * time.Second):
		t.Fatal("trip was not started")
	}

	publish(t, client, fmt.Sprintf(constants.SubjectTripCancelled, "trip-1"), models.TripCancellation{TripID: "trip-1"})
	publish(t, client, fmt.Sprintf(constants.SubjectTripCancelled, "trip-2"), []byte{})

	got := []string{}
	for len(got) < 2 {
		select {
		case id := <-cancelled:
			got = append(got, id)
		case <-time.After(3 * time.Second):
			t.Fatalf("cancellations received: %v", got)
		}
	}
	assert.ElementsMatch(t, []string{"trip-1", "trip-2"}, got)
}

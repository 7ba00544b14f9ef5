package actors

import (
	"testing"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"

	"broad-forum/internal/models"
	"broad-forum/internal/store"
	"broad-forum/internal/utils"
)

func spawnDirectoryActor(t *testing.T) (*actor.ActorSystem, *actor.PID, *store.Store) {
	t.Helper()
	system := actor.NewActorSystem()
	st := store.NewStore()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewAppDirectoryActor(st, utils.NewMetricsCollector())
	})
	return system, system.Root.Spawn(props), st
}

func TestListAppsFilters(t *testing.T) {
	system, pid, st := spawnDirectoryActor(t)

	all := request(t, system, pid, &ListAppsMsg{Filter: AppFilterAll}).([]models.OpcApp)
	assert.Len(t, all, len(st.Apps()))

	official := request(t, system, pid, &ListAppsMsg{Filter: AppFilterOfficial}).([]models.OpcApp)
	assert.Len(t, official, len(st.Apps()))

	community := request(t, system, pid, &ListAppsMsg{Filter: AppFilterCommunity}).([]models.OpcApp)
	assert.Empty(t, community)
}

func TestSubmitAppAppears(t *testing.T) {
	system, pid, _ := spawnDirectoryActor(t)

	app := request(t, system, pid, &SubmitAppMsg{
		Name:        "Sensor Hub",
		URL:         "https://example.com/sensor-hub",
		Description: "Aggregates LoRaWAN sensor data.",
		Author:      "IoT_Engineer",
	}).(models.OpcApp)
	assert.Equal(t, models.AppTypeCommunity, app.Type)
	assert.Equal(t, "IoT_Engineer", app.Author)
	assert.Equal(t, 0, app.Stars)

	community := request(t, system, pid, &ListAppsMsg{Filter: AppFilterCommunity}).([]models.OpcApp)
	assert.Len(t, community, 1)
	assert.Equal(t, app.ID, community[0].ID)
}

func TestOnlyOwnerMayEdit(t *testing.T) {
	system, pid, _ := spawnDirectoryActor(t)

	app := request(t, system, pid, &SubmitAppMsg{
		Name:   "Sensor Hub",
		URL:    "https://example.com/sensor-hub",
		Author: "IoT_Engineer",
	}).(models.OpcApp)

	result := request(t, system, pid, &UpdateAppMsg{
		AppID:     app.ID,
		Requester: "SomeoneElse",
		Name:      "Hijacked",
	})
	appErr, ok := result.(*utils.AppError)
	if !ok {
		t.Fatalf("expected forbidden, got %#v", result)
	}
	assert.Equal(t, utils.ErrForbidden, appErr.Code)

	updated := request(t, system, pid, &UpdateAppMsg{
		AppID:     app.ID,
		Requester: "IoT_Engineer",
		Name:      "Sensor Hub v2",
	}).(models.OpcApp)
	assert.Equal(t, "Sensor Hub v2", updated.Name)
	// Untouched fields keep their values.
	assert.Equal(t, "https://example.com/sensor-hub", updated.URL)
}

func TestOfficialAppsAreImmutable(t *testing.T) {
	system, pid, st := spawnDirectoryActor(t)
	official := st.Apps()[0]

	result := request(t, system, pid, &UpdateAppMsg{
		AppID:     official.ID,
		Requester: official.Author,
		Name:      "Renamed",
	})
	appErr, ok := result.(*utils.AppError)
	if !ok {
		t.Fatalf("expected forbidden, got %#v", result)
	}
	assert.Equal(t, utils.ErrForbidden, appErr.Code)

	result = request(t, system, pid, &DeleteAppMsg{AppID: official.ID, Requester: official.Author})
	appErr, ok = result.(*utils.AppError)
	if !ok {
		t.Fatalf("expected forbidden, got %#v", result)
	}
	assert.Equal(t, utils.ErrForbidden, appErr.Code)
}

func TestDeleteOwnApp(t *testing.T) {
	system, pid, st := spawnDirectoryActor(t)

	app := request(t, system, pid, &SubmitAppMsg{
		Name:   "Sensor Hub",
		URL:    "https://example.com/sensor-hub",
		Author: "IoT_Engineer",
	}).(models.OpcApp)

	result := request(t, system, pid, &DeleteAppMsg{AppID: app.ID, Requester: "IoT_Engineer"})
	assert.Equal(t, true, result)

	all := request(t, system, pid, &ListAppsMsg{Filter: AppFilterAll}).([]models.OpcApp)
	assert.Len(t, all, len(st.Apps()))

	// Deleting again reports not found.
	result = request(t, system, pid, &DeleteAppMsg{AppID: app.ID, Requester: "IoT_Engineer"})
	appErr, ok := result.(*utils.AppError)
	if !ok {
		t.Fatalf("expected not found, got %#v", result)
	}
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}

package store

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/ranihwanifactory/watchclock/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPersister struct {
	alarms  []models.Alarm
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryPersister) Load() ([]models.Alarm, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.alarms, nil
}

func (m *memoryPersister) Save(alarms []models.Alarm) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.alarms = append([]models.Alarm(nil), alarms...)
	return nil
}

func TestAlarmStore_AddTogglesDeletePersistEveryChange(t *testing.T) {
	p := &memoryPersister{}
	as := NewAlarmStore(p)

	first, err := as.Add("07:00", "Wake")
	require.NoError(t, err)
	second, err := as.Add("08:15", "")
	require.NoError(t, err)
	assert.Equal(t, 2, p.saves)
	assert.Equal(t, models.DefaultAlarmLabel, second.Label)

	toggled, ok := as.Toggle(first.ID)
	require.True(t, ok)
	assert.False(t, toggled.Enabled)
	assert.Equal(t, 3, p.saves)
	assert.False(t, p.alarms[0].Enabled)

	assert.True(t, as.Delete(first.ID))
	assert.Equal(t, 4, p.saves)
	require.Len(t, p.alarms, 1)
	assert.Equal(t, second.ID, p.alarms[0].ID)
}

func TestAlarmStore_UnknownIDIsNoop(t *testing.T) {
	p := &memoryPersister{}
	as := NewAlarmStore(p)

	_, ok := as.Toggle("missing")
	assert.False(t, ok)
	assert.False(t, as.Delete("missing"))
	assert.Equal(t, 0, p.saves)
}

func TestAlarmStore_AddRejectsInvalidTime(t *testing.T) {
	p := &memoryPersister{}
	as := NewAlarmStore(p)

	_, err := as.Add("25:00", "nope")
	assert.ErrorIs(t, err, models.ErrInvalidAlarmTime)
	assert.Equal(t, 0, as.Len())
	assert.Equal(t, 0, p.saves)
}

func TestAlarmStore_WriteVisibleImmediately(t *testing.T) {
	as := NewAlarmStore(nil)
	alarm, err := as.Add("06:30", "Run")
	require.NoError(t, err)

	snapshot := as.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, alarm.ID, snapshot[0].ID)

	as.Toggle(alarm.ID)
	assert.False(t, as.Snapshot()[0].Enabled)
}

func TestAlarmStore_SnapshotIsACopy(t *testing.T) {
	as := NewAlarmStore(nil)
	_, err := as.Add("06:30", "Run")
	require.NoError(t, err)

	snapshot := as.Snapshot()
	snapshot[0].Label = "changed"
	snapshot[0].Days[0] = "changed"

	fresh := as.Snapshot()
	assert.Equal(t, "Run", fresh[0].Label)
	assert.Equal(t, "Mon", fresh[0].Days[0])
}

func TestAlarmStore_LoadFailureStartsEmpty(t *testing.T) {
	as := NewAlarmStore(&memoryPersister{loadErr: errors.New("boom")})
	assert.Equal(t, 0, as.Len())
}

func TestAlarmStore_SaveFailureKeepsMemoryState(t *testing.T) {
	as := NewAlarmStore(&memoryPersister{saveErr: errors.New("disk full")})
	_, err := as.Add("09:00", "Standup")
	require.NoError(t, err)
	assert.Equal(t, 1, as.Len())
}

func TestAlarmStore_ReplaceAllSanitizes(t *testing.T) {
	p := &memoryPersister{}
	as := NewAlarmStore(p)

	as.ReplaceAll([]models.Alarm{
		{ID: "a", Time: "07:00", Label: "A", Enabled: true},
		{ID: "a", Time: "08:00", Label: "dup"},
		{ID: "b", Time: "99:00", Label: "bad"},
		{ID: "", Time: "10:00", Label: "no id"},
		{ID: "c", Time: "11:00"},
	})

	snapshot := as.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "a", snapshot[0].ID)
	assert.Equal(t, "c", snapshot[1].ID)
	assert.Equal(t, models.DefaultAlarmLabel, snapshot[1].Label)
	assert.Equal(t, 1, p.saves)
}

func TestPrefsPersister_RoundTrip(t *testing.T) {
	app := test.NewTempApp(t)
	persister := NewPrefsPersister(app.Preferences())

	as := NewAlarmStore(persister)
	wake, err := as.Add("07:00", "Wake")
	require.NoError(t, err)
	_, err = as.Add("12:30", "Lunch")
	require.NoError(t, err)
	_, err = as.Add("22:45", "")
	require.NoError(t, err)
	as.Toggle(wake.ID)

	reloaded := NewAlarmStore(NewPrefsPersister(app.Preferences()))
	assert.Equal(t, as.Snapshot(), reloaded.Snapshot())
}

func TestPrefsPersister_MissingKeyIsEmpty(t *testing.T) {
	app := test.NewTempApp(t)

	alarms, err := NewPrefsPersister(app.Preferences()).Load()
	require.NoError(t, err)
	assert.Empty(t, alarms)
}

func TestPrefsPersister_CorruptSnapshot(t *testing.T) {
	app := test.NewTempApp(t)
	app.Preferences().SetString(AlarmsKey, "{not json")

	_, err := NewPrefsPersister(app.Preferences()).Load()
	assert.ErrorIs(t, err, ErrCorruptSnapshot)

	as := NewAlarmStore(NewPrefsPersister(app.Preferences()))
	assert.Equal(t, 0, as.Len())
}

func TestPrefsPersister_EmptyListSerializesAsArray(t *testing.T) {
	app := test.NewTempApp(t)
	persister := NewPrefsPersister(app.Preferences())

	require.NoError(t, persister.Save(nil))
	assert.Equal(t, "[]", app.Preferences().String(AlarmsKey))
}

func TestSettingsStore_RoundTrip(t *testing.T) {
	app := test.NewTempApp(t)
	ss := NewSettingsStore(app)

	assert.Equal(t, models.DefaultSettings(), ss.Load())

	want := models.Settings{AutoStart: true, Muted: true, HoldTimeSeconds: 4}
	ss.Save(want)
	assert.Equal(t, want, ss.Load())
}

func TestPrefsPersister_LoadDropsSignedTimesAndFillsDays(t *testing.T) {
	app := test.NewTempApp(t)
	app.Preferences().SetString(AlarmsKey,
		`[{"id":"a","time":"+7:00","label":"Plus","enabled":true},`+
			`{"id":"b","time":"-0:30","label":"Minus","enabled":true},`+
			`{"id":"c","time":" 7:00","label":"Space","enabled":true},`+
			`{"id":"d","time":"07:00","label":"Wake","enabled":true}]`)

	as := NewAlarmStore(NewPrefsPersister(app.Preferences()))

	snapshot := as.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "d", snapshot[0].ID)
	assert.Equal(t, models.AllWeekdays, snapshot[0].Days)
}

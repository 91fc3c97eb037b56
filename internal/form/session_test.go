package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"malladmin/internal/core/apperror"
	"malladmin/internal/core/entity"
	"malladmin/internal/core/id"
	"malladmin/internal/core/numerator"
	"malladmin/internal/i18n"
	"malladmin/internal/metadata"
	"malladmin/internal/validation"
	"malladmin/pkg/logger"
	numsvc "malladmin/pkg/numerator"
)

func purchaseSchema() metadata.EntitySchema {
	return metadata.EntitySchema{
		Kind: "purchase",
		Fields: []metadata.FieldSpec{
			{Key: "vendor", Kind: metadata.KindText, Required: true},
			{Key: "date", Kind: metadata.KindDate, Required: true, Default: metadata.DefaultToday},
			{Key: "items", Kind: metadata.KindNumber, Required: true, Positive: true, Default: "1"},
			{Key: "status", Kind: metadata.KindEnum, Required: true, Values: []string{"completed", "pending", "processing"}, Default: "pending"},
		},
		SearchFields: []string{"id", "vendor"},
		Numbering:    numerator.YearlyConfig("PO"),
	}
}

var fixedNow = time.Date(2023, 3, 26, 10, 0, 0, 0, time.UTC)

func newConfig(t *testing.T, committer Committer) Config {
	t.Helper()
	cat, err := i18n.LoadEmbedded(i18n.WithLogger(logger.NewNop()))
	require.NoError(t, err)
	engine, err := validation.NewEngine(cat, logger.NewNop())
	require.NoError(t, err)

	gen := numsvc.New()
	gen.Observe(numerator.YearlyConfig("PO"), "PO-2023-005")

	return Config{
		Validator: engine,
		Committer: committer,
		IDs:       id.NewSource(gen).WithClock(func() time.Time { return fixedNow }),
		Locale:    "en",
		Clock:     func() time.Time { return fixedNow },
		Logger:    logger.NewNop(),
	}
}

func TestOpen_AddUsesDefaults(t *testing.T) {
	s := Open(newConfig(t, SimulatedCommitter{}), purchaseSchema(), nil)

	assert.Equal(t, entity.ModeAdd, s.Mode())
	assert.Equal(t, Editing, s.State())
	assert.Equal(t, map[string]string{
		"vendor": "",
		"date":   "2023-03-26",
		"items":  "1",
		"status": "pending",
	}, s.Draft())
}

func TestOpen_EditUsesRecordValues(t *testing.T) {
	rec := entity.NewRecord("purchase", "PO-2023-001", entity.Values{
		"vendor": "ABC Supplies",
		"date":   time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
		"items":  decimal.NewFromInt(24),
		"status": "completed",
	})
	s := Open(newConfig(t, SimulatedCommitter{}), purchaseSchema(), &rec)

	assert.Equal(t, entity.ModeEdit, s.Mode())
	assert.Equal(t, "PO-2023-001", s.RecordID())
	assert.Equal(t, map[string]string{
		"vendor": "ABC Supplies",
		"date":   "2023-03-10",
		"items":  "24",
		"status": "completed",
	}, s.Draft())
}

func TestUpdateField(t *testing.T) {
	s := Open(newConfig(t, SimulatedCommitter{}), purchaseSchema(), nil)

	require.NoError(t, s.UpdateField("vendor", "  raw value "))
	assert.Equal(t, "  raw value ", s.Draft()["vendor"])

	err := s.UpdateField("nope", "x")
	require.Error(t, err)
	assert.True(t, apperror.IsConfiguration(err))
}

func TestSubmit_InvalidReturnsToEditing(t *testing.T) {
	s := Open(newConfig(t, SimulatedCommitter{}), purchaseSchema(), nil)
	require.NoError(t, s.UpdateField("items", "0"))

	out, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, out.Committed)
	assert.Nil(t, out.Record)
	assert.Equal(t, Editing, s.State())

	last, ok := s.LastResult()
	require.True(t, ok)
	assert.Len(t, last.Errors(), 2)
	fe, _ := last.Error("items")
	assert.Equal(t, "Must be a positive number", fe.Message)

	// the draft survives for correction
	assert.Equal(t, "0", s.Draft()["items"])
}

func TestSubmit_AddAssignsNextNumber(t *testing.T) {
	s := Open(newConfig(t, SimulatedCommitter{}), purchaseSchema(), nil)
	require.NoError(t, s.UpdateField("vendor", "New Vendor"))
	require.NoError(t, s.UpdateField("items", "12"))

	out, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, out.Committed)
	require.NotNil(t, out.Record)

	assert.Equal(t, Committed, s.State())
	assert.Equal(t, "PO-2023-006", out.Record.ID)
	assert.Equal(t, 1, out.Record.Version)
	assert.Equal(t, "New Vendor", out.Record.Values.GetString("vendor"))
	assert.True(t, out.Record.Values.GetDecimal("items").Equal(decimal.NewFromInt(12)))
	assert.Equal(t, fixedNow.Truncate(24*time.Hour), out.Record.Values.GetTime("date"))
}

func TestSubmit_EditKeepsIDAndBumpsVersion(t *testing.T) {
	rec := entity.NewRecord("purchase", "PO-2023-002", entity.Values{
		"vendor": "XYZ Distributors",
		"date":   time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
		"items":  decimal.NewFromInt(12),
		"status": "pending",
	})
	s := Open(newConfig(t, SimulatedCommitter{}), purchaseSchema(), &rec)
	require.NoError(t, s.UpdateField("status", "completed"))

	out, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, out.Committed)
	assert.Equal(t, "PO-2023-002", out.Record.ID)
	assert.Equal(t, 2, out.Record.Version)
	assert.Equal(t, "completed", out.Record.Values.GetString("status"))
	assert.Equal(t, "pending", rec.Values.GetString("status"), "input record untouched")
}

func TestSubmit_SecondSubmitWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var commits int
	committer := CommitterFunc(func(ctx context.Context, rec entity.Record, mode entity.CommitMode) error {
		commits++
		close(started)
		<-release
		return nil
	})

	s := Open(newConfig(t, committer), purchaseSchema(), nil)
	require.NoError(t, s.UpdateField("vendor", "Metro Suppliers"))

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()

	<-started
	assert.Equal(t, Submitting, s.State())

	_, err := s.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	assert.True(t, apperror.IsConflict(s.Cancel()), "cancel is disallowed mid-submit")
	assert.True(t, apperror.IsConflict(s.UpdateField("vendor", "x")))

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, Committed, s.State())
	assert.Equal(t, 1, commits)
}

func TestSubmit_AfterCommitIsClosed(t *testing.T) {
	s := Open(newConfig(t, SimulatedCommitter{}), purchaseSchema(), nil)
	require.NoError(t, s.UpdateField("vendor", "City Wholesalers"))
	_, err := s.Submit(context.Background())
	require.NoError(t, err)

	_, err = s.Submit(context.Background())
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeSessionClosed, appErr.Code)
	assert.Error(t, s.Cancel())
}

func TestSubmit_CommitFailureReturnsToEditing(t *testing.T) {
	boom := errors.New("backend down")
	s := Open(newConfig(t, CommitterFunc(func(context.Context, entity.Record, entity.CommitMode) error {
		return boom
	})), purchaseSchema(), nil)
	require.NoError(t, s.UpdateField("vendor", "ABC"))

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, Editing, s.State())
}

func TestCancel(t *testing.T) {
	s := Open(newConfig(t, SimulatedCommitter{}), purchaseSchema(), nil)
	require.NoError(t, s.Cancel())
	assert.Equal(t, Cancelled, s.State())
	require.NoError(t, s.Cancel())

	_, err := s.Submit(context.Background())
	assert.True(t, apperror.IsConflict(err))
}

func TestSimulatedCommitter_Delay(t *testing.T) {
	start := time.Now()
	require.NoError(t, SimulatedCommitter{Delay: 20 * time.Millisecond}.Commit(context.Background(), entity.Record{}, entity.ModeAdd))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

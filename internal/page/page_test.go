package page

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"malladmin/internal/core/apperror"
	"malladmin/internal/core/entity"
	"malladmin/internal/dialog"
	"malladmin/internal/domain/catalogs"
	"malladmin/internal/form"
	"malladmin/internal/i18n"
	"malladmin/internal/validation"
	"malladmin/pkg/logger"
)

var fixedNow = time.Date(2023, 11, 20, 9, 30, 0, 0, time.UTC)

type fixture struct {
	site    *Site
	notices *dialog.Recorder
}

func newFixture(t *testing.T, committer form.Committer) fixture {
	t.Helper()
	reg, err := catalogs.NewRegistry()
	require.NoError(t, err)
	cat, err := i18n.LoadEmbedded(i18n.WithLogger(logger.NewNop()))
	require.NoError(t, err)
	engine, err := validation.NewEngine(cat, logger.NewNop())
	require.NoError(t, err)
	if committer == nil {
		committer = form.SimulatedCommitter{}
	}

	notices := &dialog.Recorder{}
	site, err := NewSite(context.Background(), SiteConfig{
		Registry:  reg,
		Seeds:     catalogs.Seeds(),
		Catalog:   cat,
		Validator: engine,
		Committer: committer,
		Notifier:  notices,
		Clock:     func() time.Time { return fixedNow },
		Logger:    logger.NewNop(),
		Overview:  catalogs.Overview(),
	})
	require.NoError(t, err)
	return fixture{site: site, notices: notices}
}

func (f fixture) page(t *testing.T, kind string) *Page {
	t.Helper()
	p, err := f.site.Page(kind)
	require.NoError(t, err)
	return p
}

func TestSite_UnknownKind(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.site.Page("parking")
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, []string{"inventory", "issue", "payment", "purchase", "sale", "tenant"}, f.site.Kinds())
}

func TestNewSite_IncompleteCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "locales", "en"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "locales", "en", "core.yaml"),
		[]byte("locale: en\nnamespace: core\nmessages:\n  validation.required: \"Required\"\n"), 0o644))
	cat, err := i18n.Load(os.DirFS(dir), i18n.WithLogger(logger.NewNop()))
	require.NoError(t, err)
	engine, err := validation.NewEngine(cat, logger.NewNop())
	require.NoError(t, err)
	reg, err := catalogs.NewRegistry()
	require.NoError(t, err)

	_, err = NewSite(context.Background(), SiteConfig{
		Registry:  reg,
		Catalog:   cat,
		Validator: engine,
		Logger:    logger.NewNop(),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConfiguration(err))
}

func TestCommit_AddTenant(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "tenant")
	ctx := context.Background()

	out, err := p.Commit(ctx, "en", "", map[string]string{
		"name":     "Test Store",
		"category": "Electronics",
		"location": "Ground Floor, G-01",
		"gstin":    "29AADCT4567R1Z9",
	})
	require.NoError(t, err)
	require.True(t, out.Committed)
	assert.Equal(t, "T007", out.Record.ID)
	assert.Equal(t, entity.Values{
		"name":     "Test Store",
		"category": "Electronics",
		"location": "Ground Floor, G-01",
		"gstin":    "29AADCT4567R1Z9",
		"status":   "active",
	}, out.Record.Values)

	n, ok := f.notices.Last()
	require.True(t, ok)
	assert.Equal(t, "Tenant added successfully", n.Message)

	v, err := p.View(ctx, Query{Search: "test store"}, "en")
	require.NoError(t, err)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, []string{"T007", "Test Store", "Electronics", "Ground Floor, G-01", "29AADCT4567R1Z9", "Active"}, v.Rows[0].Cells)
	assert.Equal(t, 7, v.Total)
}

func TestCommit_AddTenantBadGSTIN(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "tenant")

	out, err := p.Commit(context.Background(), "en", "", map[string]string{
		"name":     "Test Store",
		"category": "Electronics",
		"location": "Ground Floor, G-01",
		"gstin":    "29-AADCT",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.False(t, out.Committed)

	fe, ok := out.Result.Error("gstin")
	require.True(t, ok)
	assert.Equal(t, "GSTIN must be in the format: 33AABCT1234Z1Z5", fe.Message)
	assert.Equal(t, 6, p.List().Len())
	assert.Empty(t, f.notices.Notices())
}

func TestCommit_EditInventoryQuantityMustBePositive(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en", "Must be a positive number"},
		{"hi", "एक सकारात्मक संख्या होनी चाहिए"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			f := newFixture(t, nil)
			p := f.page(t, "inventory")

			out, err := p.Commit(context.Background(), tt.locale, "I001", map[string]string{"quantity": "0"})
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))

			errs := out.Result.Errors()
			require.Len(t, errs, 1)
			assert.Equal(t, "quantity", errs[0].Field)
			assert.Equal(t, tt.want, errs[0].Message)

			rec, err := p.Get("I001")
			require.NoError(t, err)
			assert.Equal(t, "24", rec.Text("quantity"))
			assert.Equal(t, 1, rec.Version)
		})
	}
}

func TestView_RendersNumbersBeyondInt64(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "inventory")
	ctx := context.Background()

	_, err := p.Commit(ctx, "en", "I001", map[string]string{"quantity": "10000000000000000000"})
	require.NoError(t, err)

	v, err := p.View(ctx, Query{Limit: 1}, "en")
	require.NoError(t, err)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "I001", v.Rows[0].ID)
	assert.Equal(t, "10,000,000,000,000,000,000", v.Rows[0].Cells[4])
}

func TestCommit_MisgroupedNumberRejected(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "inventory")

	out, err := p.Commit(context.Background(), "en", "I001", map[string]string{"price": "1,5"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	fe, bad := out.Result.Error("price")
	require.True(t, bad)
	assert.Equal(t, "Must be a number", fe.Message)

	rec, err := p.Get("I001")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Version)
}

func TestCommit_EditKeepsOtherValues(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "inventory")

	out, err := p.Commit(context.Background(), "en", "I002", map[string]string{"quantity": "3", "stockLevel": "low"})
	require.NoError(t, err)
	require.True(t, out.Committed)

	rec, err := p.Get("I002")
	require.NoError(t, err)
	assert.Equal(t, "3", rec.Text("quantity"))
	assert.Equal(t, "42000", rec.Text("price"))
	assert.Equal(t, "LED TV", rec.Text("name"))
	assert.Equal(t, 2, rec.Version)
	assert.Equal(t, 6, p.List().Len())
}

func TestCommit_MissingRequiredFieldIsTheOnlyError(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "purchase")

	out, err := p.Commit(context.Background(), "hi", "", map[string]string{"value": "50000"})
	require.Error(t, err)

	errs := out.Result.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "vendor", errs[0].Field)
	assert.Equal(t, validation.CodeRequired, errs[0].Code)
	assert.Equal(t, "यह फील्ड आवश्यक है", errs[0].Message)

	app, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, app.HTTPStatus)
}

func TestCommit_AddPurchaseNumbersWithinYear(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "purchase")

	out, err := p.Commit(context.Background(), "en", "", map[string]string{"vendor": "Test Vendor", "value": "1,20,000"})
	require.NoError(t, err)
	assert.Equal(t, "PO-2023-006", out.Record.ID)
	assert.Equal(t, "2023-11-20", out.Record.Text("date"))
	assert.Equal(t, "120000", out.Record.Text("value"))
	assert.Equal(t, "pending", out.Record.Text("status"))
}

func TestCommit_UnknownFieldOrRecord(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "tenant")
	ctx := context.Background()

	_, err := p.Commit(ctx, "en", "", map[string]string{"floor": "2"})
	assert.Equal(t, http.StatusBadRequest, apperror.GetHTTPStatus(err))

	_, err = p.Commit(ctx, "en", "T999", map[string]string{"name": "x"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestDialog_DoubleSubmitAppendsOnce(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	f := newFixture(t, form.CommitterFunc(func(context.Context, entity.Record, entity.CommitMode) error {
		started <- struct{}{}
		<-release
		return nil
	}))
	p := f.page(t, "tenant")
	d := p.Dialog()

	_, err := d.OpenAdd()
	require.NoError(t, err)
	for k, v := range map[string]string{
		"name":     "Test Store",
		"category": "Electronics",
		"location": "Ground Floor, G-01",
		"gstin":    "29AADCT4567R1Z9",
	} {
		require.NoError(t, d.UpdateField(k, v))
	}

	done := make(chan error, 1)
	go func() {
		_, err := d.Submit(context.Background())
		done <- err
	}()
	<-started

	_, err = d.Submit(context.Background())
	assert.True(t, apperror.IsConflict(err))

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 7, p.List().Len())
}

func TestView_PaymentTabs(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "payment")
	ctx := context.Background()

	v, err := p.View(ctx, Query{Tab: "paid"}, "en")
	require.NoError(t, err)
	require.Len(t, v.Rows, 4)
	assert.Equal(t, "Showing 4 of 6", v.Summary)
	assert.Equal(t, []Tab{
		{Value: "all", Label: "All", Count: 6},
		{Value: "paid", Label: "Paid", Count: 4, Active: true},
		{Value: "pending", Label: "Pending", Count: 1},
		{Value: "failed", Label: "Failed", Count: 1},
	}, v.Tabs)

	v, err = p.View(ctx, Query{Tab: "paid"}, "hi")
	require.NoError(t, err)
	assert.Equal(t, "6 में से 4 दिखाए जा रहे हैं", v.Summary)
	assert.Equal(t, "भुगतान", v.Title)
	assert.Equal(t, "भुगतान किया गया", v.Tabs[1].Label)

	_, err = p.View(ctx, Query{Tab: "refunded"}, "en")
	assert.Equal(t, http.StatusBadRequest, apperror.GetHTTPStatus(err))
}

func TestView_NoTabsOnUntabbedPage(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "tenant")

	v, err := p.View(context.Background(), Query{}, "en")
	require.NoError(t, err)
	assert.Nil(t, v.Tabs)

	_, err = p.View(context.Background(), Query{Tab: "active"}, "en")
	assert.Equal(t, http.StatusBadRequest, apperror.GetHTTPStatus(err))
}

func TestView_InventoryColumnsAndPaging(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "inventory")
	ctx := context.Background()

	v, err := p.View(ctx, Query{Limit: 2, Offset: 1}, "en")
	require.NoError(t, err)
	assert.Equal(t, "Inventory Management", v.Title)
	assert.Equal(t, Column{Key: "id", Label: "ID"}, v.Columns[0])
	assert.Equal(t, Column{Key: "price", Label: "Price (₹)"}, v.Columns[5])
	require.Len(t, v.Rows, 2)
	assert.Equal(t, []string{"I002", "LED TV", "Electronics", "Bombay Electronics", "8", "42,000", "Low"}, v.Rows[0].Cells)
	assert.Equal(t, "I003", v.Rows[1].ID)
	assert.Equal(t, 6, v.Matched)
	assert.Equal(t, "Showing 2 of 6", v.Summary)
	assert.Empty(t, v.Empty)

	v, err = p.View(ctx, Query{Search: "zzz"}, "en")
	require.NoError(t, err)
	assert.Empty(t, v.Rows)
	assert.Equal(t, "No records found", v.Empty)
	assert.Equal(t, "Showing 0 of 6", v.Summary)

	_, err = p.View(ctx, Query{Limit: -1}, "en")
	assert.Equal(t, http.StatusBadRequest, apperror.GetHTTPStatus(err))
}

func TestExportCSV_Sales(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "sale")

	var buf bytes.Buffer
	require.NoError(t, p.ExportCSV(context.Background(), &buf, Query{Search: "chennai", Limit: 1, Offset: 3}, "en"))
	assert.Equal(t,
		"ID,Store,Date,Amount (₹),Payment Method,GST (₹)\n"+
			"S001,Chennai Silks,2023-11-14,42500,Card,7650\n",
		buf.String())
}

func TestDelete_NotifiesOnce(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "payment")
	ctx := context.Background()

	require.NoError(t, p.Delete(ctx, "hi", "P001"))
	assert.Equal(t, 5, p.List().Len())
	n, ok := f.notices.Last()
	require.True(t, ok)
	assert.Equal(t, "भुगतान सफलतापूर्वक हटा दिया गया", n.Message)

	require.NoError(t, p.Delete(ctx, "hi", "P001"))
	assert.Len(t, f.notices.Notices(), 1)
}

func TestDescribe(t *testing.T) {
	f := newFixture(t, nil)
	p := f.page(t, "issue")

	d := p.Describe("en")
	assert.Equal(t, "Maintenance Issues", d.Title)
	assert.Equal(t, "status", d.TabField)
	require.Len(t, d.Fields, 6)
	assert.Equal(t, "In Progress", d.Fields[5].Options[1].Label)
}

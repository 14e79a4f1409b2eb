package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityasinghr651/civics-api/internal/models"
)

func newReportRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func reportRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "reporter_email", "status",
		"created_at", "updated_at", "remarks", "location",
	})
}

func TestReportRepositorySave(t *testing.T) {
	db, mock, cleanup := newReportRepoMock(t)
	defer cleanup()

	repo := NewReportRepository(db)
	mock.ExpectExec("INSERT INTO reports").
		WithArgs("rep-1", "Pothole", "Big hole on Main St", "a@example.com",
			models.StatusReceived, sqlmock.AnyArg(), "", models.DefaultLocation).
		WillReturnResult(sqlmock.NewResult(0, 1))

	report := &models.Report{
		ID:            "rep-1",
		Title:         "Pothole",
		Description:   "Big hole on Main St",
		ReporterEmail: "a@example.com",
		Status:        models.StatusReceived,
		CreatedAt:     time.Now().UTC(),
		Location:      models.DefaultLocation,
	}
	require.NoError(t, repo.Save(context.Background(), report))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryGet(t *testing.T) {
	db, mock, cleanup := newReportRepoMock(t)
	defer cleanup()

	repo := NewReportRepository(db)
	created := time.Now().UTC()
	mock.ExpectQuery("SELECT id, title").
		WithArgs("rep-1").
		WillReturnRows(reportRows().
			AddRow("rep-1", "Pothole", "Big hole on Main St", "a@example.com",
				models.StatusReceived, created, nil, "", models.DefaultLocation))

	report, err := repo.Get(context.Background(), "rep-1")
	require.NoError(t, err)
	assert.Equal(t, "Pothole", report.Title)
	assert.Equal(t, models.StatusReceived, report.Status)
	assert.Nil(t, report.UpdatedAt)
}

func TestReportRepositoryGetNotFound(t *testing.T) {
	db, mock, cleanup := newReportRepoMock(t)
	defer cleanup()

	repo := NewReportRepository(db)
	mock.ExpectQuery("SELECT id, title").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReportRepositoryApplyStatusUpdate(t *testing.T) {
	db, mock, cleanup := newReportRepoMock(t)
	defer cleanup()

	repo := NewReportRepository(db)
	mock.ExpectExec("UPDATE reports SET status").
		WithArgs("Resolved", "fixed", sqlmock.AnyArg(), "rep-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	upd := models.StatusUpdate{Status: "Resolved", Remarks: "fixed", UpdatedAt: time.Now().UTC()}
	require.NoError(t, repo.ApplyStatusUpdate(context.Background(), "rep-1", upd))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryApplyStatusUpdateMissing(t *testing.T) {
	db, mock, cleanup := newReportRepoMock(t)
	defer cleanup()

	repo := NewReportRepository(db)
	mock.ExpectExec("UPDATE reports SET status").
		WithArgs("Resolved", "", sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	upd := models.StatusUpdate{Status: "Resolved", UpdatedAt: time.Now().UTC()}
	err := repo.ApplyStatusUpdate(context.Background(), "missing", upd)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReportRepositoryListByReporter(t *testing.T) {
	db, mock, cleanup := newReportRepoMock(t)
	defer cleanup()

	repo := NewReportRepository(db)
	created := time.Now().UTC()
	mock.ExpectQuery("SELECT id, title").
		WithArgs("a@example.com").
		WillReturnRows(reportRows().
			AddRow("rep-1", "Pothole", "Big hole", "a@example.com", models.StatusReceived, created, nil, "", models.DefaultLocation).
			AddRow("rep-2", "Streetlight", "Flickering", "a@example.com", "Resolved", created, created, "done", models.DefaultLocation))

	reports, err := repo.ListByReporter(context.Background(), "a@example.com")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "rep-2", reports[1].ID)
	assert.NotNil(t, reports[1].UpdatedAt)
}

func TestReportRepositoryListByReporterEmpty(t *testing.T) {
	db, mock, cleanup := newReportRepoMock(t)
	defer cleanup()

	repo := NewReportRepository(db)
	mock.ExpectQuery("SELECT id, title").
		WithArgs("nobody@example.com").
		WillReturnRows(reportRows())

	reports, err := repo.ListByReporter(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, reports)
	assert.Empty(t, reports)
}

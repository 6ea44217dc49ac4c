package db

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/existflow/credboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seed(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()
	err := db.InTx(ctx, func(q *Queries) error {
		for _, s := range []model.Section{{ID: 2, Title: "Banks", Icon: "FaUniversity"}, {ID: 1, Title: "Schools", Icon: model.IconSchool}} {
			if err := q.UpsertSection(ctx, s); err != nil {
				return err
			}
		}
		if err := q.UpsertProject(ctx, model.Project{ID: 5, Name: "Acme"}); err != nil {
			return err
		}
		if err := q.UpsertAttachmentType(ctx, AttachmentType{ID: 1, Name: "PDF", Icon: "FaFilePdf"}); err != nil {
			return err
		}
		if err := q.UpsertAttachment(ctx, 2, 5, 1, "http://f/2"); err != nil {
			return err
		}
		if err := q.UpsertAttachment(ctx, 1, 5, 1, "http://f/1"); err != nil {
			return err
		}
		return q.UpsertCredential(ctx, 1, model.Credential{
			ID: 10, ProjectID: 5, Category: "Portal", URL: "http://x", Username: "u", Password: "p", Notes: "n",
		})
	})
	require.NoError(t, err)
}

func TestOpen_SQLiteMemory(t *testing.T) {
	db := openTestDB(t)
	assert.Equal(t, SQLite, db.Dialect())

	// migrations are idempotent
	require.NoError(t, db.migrate(context.Background()))
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fixture.db")
	db, err := Open(context.Background(), "file:"+path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.FileExists(t, path)
}

func TestQueries_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)
	ctx := context.Background()

	sections, err := db.ListSections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Section{
		{ID: 1, Title: "Schools", Icon: model.IconSchool},
		{ID: 2, Title: "Banks", Icon: "FaUniversity"},
	}, sections)

	creds, err := db.ListCredentialsBySection(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []model.Credential{{
		ID: 10, ProjectID: 5, ProjectName: "Acme",
		Category: "Portal", URL: "http://x", Username: "u", Password: "p", Notes: "n",
	}}, creds)

	atts, err := db.ListAttachmentsByProject(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []model.Attachment{
		{URL: "http://f/1", TypeName: "PDF", TypeIcon: "FaFilePdf"},
		{URL: "http://f/2", TypeName: "PDF", TypeIcon: "FaFilePdf"},
	}, atts)

	none, err := db.ListCredentialsBySection(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	ok, err := db.SectionExists(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = db.SectionExists(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQueries_UpsertReplaces(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)
	ctx := context.Background()

	require.NoError(t, db.UpsertProject(ctx, model.Project{ID: 5, Name: "Acme Corp"}))
	creds, err := db.ListCredentialsBySection(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", creds[0].ProjectName)
}

func TestInTx_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := db.InTx(ctx, func(q *Queries) error {
		if err := q.UpsertSection(ctx, model.Section{ID: 1, Title: "Schools"}); err != nil {
			return err
		}
		// project 404 does not exist
		return q.UpsertCredential(ctx, 1, model.Credential{ID: 1, ProjectID: 404})
	})
	require.Error(t, err)

	sections, err := db.ListSections(ctx)
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestDialectOf(t *testing.T) {
	assert.Equal(t, Postgres, DialectOf("postgres://localhost:5432/credboard?sslmode=disable"))
	assert.Equal(t, Postgres, DialectOf("PostgreSQL://db/x"))
	assert.Equal(t, SQLite, DialectOf("file:credboard.db"))
	assert.Equal(t, SQLite, DialectOf("/tmp/x.db"))
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM t WHERE a = ? AND b = ?"
	assert.Equal(t, q, rebind(SQLite, q))
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", rebind(Postgres, q))
}

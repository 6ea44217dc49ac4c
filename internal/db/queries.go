package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/existflow/credboard/internal/model"
)

// DBTX is satisfied by *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds the statements the fixture backend needs. Statements are
// written with ? placeholders and rebound for Postgres.
type Queries struct {
	db      DBTX
	dialect Dialect
}

func New(db DBTX, dialect Dialect) *Queries {
	return &Queries{db: db, dialect: dialect}
}

// WithTx returns a copy running on tx
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx, dialect: q.dialect}
}

// rebind rewrites ? placeholders as $1, $2, ... for Postgres
func rebind(dialect Dialect, query string) string {
	if dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) error {
	_, err := q.db.ExecContext(ctx, rebind(q.dialect, query), args...)
	return err
}

const listSections = `SELECT id, title, icon FROM sections ORDER BY id`

func (q *Queries) ListSections(ctx context.Context) ([]model.Section, error) {
	rows, err := q.db.QueryContext(ctx, listSections)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer rows.Close()

	sections := []model.Section{}
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.Title, &s.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

const sectionExists = `SELECT COUNT(*) FROM sections WHERE id = ?`

func (q *Queries) SectionExists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := q.db.QueryRowContext(ctx, rebind(q.dialect, sectionExists), id).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to look up section: %w", err)
	}
	return n > 0, nil
}

const listCredentialsBySection = `
SELECT c.id, c.project_id, p.name, c.category, c.url, c.username, c.password, c.notes
FROM credentials c
JOIN projects p ON p.id = c.project_id
WHERE c.section_id = ?
ORDER BY c.id`

func (q *Queries) ListCredentialsBySection(ctx context.Context, sectionID int64) ([]model.Credential, error) {
	rows, err := q.db.QueryContext(ctx, rebind(q.dialect, listCredentialsBySection), sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	defer rows.Close()

	creds := []model.Credential{}
	for rows.Next() {
		var c model.Credential
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.ProjectName, &c.Category, &c.URL, &c.Username, &c.Password, &c.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		creds = append(creds, c)
	}
	return creds, rows.Err()
}

const listAttachmentsByProject = `
SELECT a.url, t.name, t.icon
FROM attachments a
JOIN attachment_types t ON t.id = a.type_id
WHERE a.project_id = ?
ORDER BY a.id`

func (q *Queries) ListAttachmentsByProject(ctx context.Context, projectID int64) ([]model.Attachment, error) {
	rows, err := q.db.QueryContext(ctx, rebind(q.dialect, listAttachmentsByProject), projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	atts := []model.Attachment{}
	for rows.Next() {
		var a model.Attachment
		if err := rows.Scan(&a.URL, &a.TypeName, &a.TypeIcon); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		atts = append(atts, a)
	}
	return atts, rows.Err()
}

const upsertSection = `
INSERT INTO sections (id, title, icon) VALUES (?, ?, ?)
ON CONFLICT (id) DO UPDATE SET title = excluded.title, icon = excluded.icon`

func (q *Queries) UpsertSection(ctx context.Context, s model.Section) error {
	if err := q.exec(ctx, upsertSection, s.ID, s.Title, string(s.Icon)); err != nil {
		return fmt.Errorf("failed to save section %d: %w", s.ID, err)
	}
	return nil
}

const upsertProject = `
INSERT INTO projects (id, name) VALUES (?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name`

func (q *Queries) UpsertProject(ctx context.Context, p model.Project) error {
	if err := q.exec(ctx, upsertProject, p.ID, p.Name); err != nil {
		return fmt.Errorf("failed to save project %d: %w", p.ID, err)
	}
	return nil
}

const upsertCredential = `
INSERT INTO credentials (id, section_id, project_id, category, url, username, password, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    section_id = excluded.section_id,
    project_id = excluded.project_id,
    category = excluded.category,
    url = excluded.url,
    username = excluded.username,
    password = excluded.password,
    notes = excluded.notes`

func (q *Queries) UpsertCredential(ctx context.Context, sectionID int64, c model.Credential) error {
	err := q.exec(ctx, upsertCredential,
		c.ID, sectionID, c.ProjectID, c.Category, c.URL, c.Username, c.Password, c.Notes)
	if err != nil {
		return fmt.Errorf("failed to save credential %d: %w", c.ID, err)
	}
	return nil
}

// AttachmentType is a row of attachment_types
type AttachmentType struct {
	ID   int64
	Name string
	Icon model.IconKey
}

const upsertAttachmentType = `
INSERT INTO attachment_types (id, name, icon) VALUES (?, ?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name, icon = excluded.icon`

func (q *Queries) UpsertAttachmentType(ctx context.Context, t AttachmentType) error {
	if err := q.exec(ctx, upsertAttachmentType, t.ID, t.Name, string(t.Icon)); err != nil {
		return fmt.Errorf("failed to save attachment type %d: %w", t.ID, err)
	}
	return nil
}

const upsertAttachment = `
INSERT INTO attachments (id, project_id, type_id, url) VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET project_id = excluded.project_id, type_id = excluded.type_id, url = excluded.url`

func (q *Queries) UpsertAttachment(ctx context.Context, id, projectID, typeID int64, url string) error {
	if err := q.exec(ctx, upsertAttachment, id, projectID, typeID, url); err != nil {
		return fmt.Errorf("failed to save attachment %d: %w", id, err)
	}
	return nil
}

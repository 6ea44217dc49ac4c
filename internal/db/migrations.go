package db

import (
	"context"
	"fmt"
)

// migrate runs all database migrations. The statements are valid for both
// SQLite and Postgres.
func (db *DB) migrate(ctx context.Context) error {
	migrations := []string{
		migrationCreateSections,
		migrationCreateProjects,
		migrationCreateCredentials,
		migrationCreateAttachmentTypes,
		migrationCreateAttachments,
	}

	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const migrationCreateSections = `
CREATE TABLE IF NOT EXISTS sections (
    id BIGINT PRIMARY KEY,
    title TEXT NOT NULL,
    icon TEXT NOT NULL DEFAULT ''
);
`

const migrationCreateProjects = `
CREATE TABLE IF NOT EXISTS projects (
    id BIGINT PRIMARY KEY,
    name TEXT NOT NULL
);
`

const migrationCreateCredentials = `
CREATE TABLE IF NOT EXISTS credentials (
    id BIGINT PRIMARY KEY,
    section_id BIGINT NOT NULL REFERENCES sections(id),
    project_id BIGINT NOT NULL REFERENCES projects(id),
    category TEXT NOT NULL DEFAULT '',
    url TEXT NOT NULL DEFAULT '',
    username TEXT NOT NULL DEFAULT '',
    password TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_credentials_section ON credentials(section_id);
`

const migrationCreateAttachmentTypes = `
CREATE TABLE IF NOT EXISTS attachment_types (
    id BIGINT PRIMARY KEY,
    name TEXT NOT NULL,
    icon TEXT NOT NULL DEFAULT ''
);
`

const migrationCreateAttachments = `
CREATE TABLE IF NOT EXISTS attachments (
    id BIGINT PRIMARY KEY,
    project_id BIGINT NOT NULL REFERENCES projects(id),
    type_id BIGINT NOT NULL REFERENCES attachment_types(id),
    url TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attachments_project ON attachments(project_id);
`

// internal/knowledge/postgres.go
package knowledge

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// LoadFromPostgres reads the three knowledge documents from the
// knowledge_documents table (one JSONB row per document name). The table is
// a convenience for deployments that keep reference data in Postgres; the
// document shape and validation are identical to the file loader.
func LoadFromPostgres(ctx context.Context, db *sql.DB) (*Store, error) {
	var (
		courses CoursesDoc
		rules   RulesDoc
		plans   PlansDoc
	)

	if err := loadDocumentRow(ctx, db, "courses", &courses); err != nil {
		return nil, err
	}
	if err := loadDocumentRow(ctx, db, "rules", &rules); err != nil {
		return nil, err
	}
	if err := loadDocumentRow(ctx, db, "teaching_plans", &plans); err != nil {
		return nil, err
	}

	return NewStore(&courses, &rules, &plans), nil
}

func loadDocumentRow(ctx context.Context, db *sql.DB, name string, out interface{}) error {
	row := db.QueryRowContext(ctx,
		`SELECT document FROM knowledge_documents WHERE name = $1`, name)

	var data []byte
	if err := row.Scan(&data); err != nil {
		return fmt.Errorf("load %s document: %w", name, err)
	}
	if err := ValidateDocument(name, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s document: %w", name, err)
	}
	return nil
}

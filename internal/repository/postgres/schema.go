package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Table is a table declaration used by BuildSchemas.
type Table struct {
	Name    string
	Columns string
}

// Tables lists every table the service owns, in creation order.
var Tables = []Table{
	{
		Name: "rides",
		Columns: `
			row_id BIGSERIAL PRIMARY KEY,
			ride_id TEXT NOT NULL UNIQUE,
			start_lat DOUBLE PRECISION NOT NULL,
			start_long DOUBLE PRECISION NOT NULL,
			end_lat DOUBLE PRECISION NOT NULL,
			end_long DOUBLE PRECISION NOT NULL,
			rider_name TEXT NOT NULL,
			driver_name TEXT NOT NULL,
			driver_vehicle TEXT NOT NULL,
			created TIMESTAMPTZ NOT NULL DEFAULT NOW()
		`,
	},
}

// createTableStatement renders the CREATE TABLE statement for t.
func createTableStatement(t Table) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t.Name, t.Columns)
}

// BuildSchemas creates every table in Tables. Existing tables are left as they are.
func BuildSchemas(ctx context.Context, q Querier, logger *zap.Logger) error {
	logger.Info("Creating database schemas")
	for _, t := range Tables {
		logger.Info("Creating table", zap.String("table", t.Name))
		if _, err := q.ExecContext(ctx, createTableStatement(t)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name, err)
		}
	}
	return nil
}

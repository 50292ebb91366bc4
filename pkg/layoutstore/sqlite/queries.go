package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

const getActiveLayout = `select name from active_layout where id = 1`

func (q *Queries) GetActiveLayout(ctx context.Context) (string, error) {
	row := q.db.QueryRowContext(ctx, getActiveLayout)
	var name string
	err := row.Scan(&name)
	return name, err
}

const setActiveLayout = `
insert into active_layout (id, name, updated_at)
values (1, ?, current_timestamp)
on conflict (id) do update set name = excluded.name, updated_at = excluded.updated_at
`

func (q *Queries) SetActiveLayout(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, setActiveLayout, name)
	return err
}

const dumpTables = `
select sql from sqlite_master
where type = 'table' and name not like 'sqlite_%'
order by name
`

func (q *Queries) DumpTables(ctx context.Context) ([]*string, error) {
	return q.dump(ctx, dumpTables)
}

const dumpRest = `
select sql from sqlite_master
where type <> 'table' and name not like 'sqlite_%'
order by name
`

func (q *Queries) DumpRest(ctx context.Context) ([]*string, error) {
	return q.dump(ctx, dumpRest)
}

func (q *Queries) dump(ctx context.Context, query string) ([]*string, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*string
	for rows.Next() {
		var statement *string
		if err := rows.Scan(&statement); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, statement)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

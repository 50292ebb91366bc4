package main

import (
	"bufio"
	"codeberg.org/miketth/dyscover/pkg/layoutstore/sqlite"
	"codeberg.org/miketth/dyscover/pkg/layoutstore/sqlite/migrations"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"io"
	"log"
	"os"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	path := flag.String("path", "", "file to write the schema to, - for stdout")
	debug := flag.Bool("debug", false, "use debug level logging")
	flag.Parse()

	if *path == "" {
		return errors.New("missing -path flag")
	}

	log, err := newLogger(*debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	out := io.Writer(os.Stdout)
	if *path != "-" {
		file, err := os.Create(*path)
		if err != nil {
			return fmt.Errorf("create file: %w", err)
		}
		defer file.Close()
		out = file
	}

	return dump(context.Background(), out, log)
}

// dump migrates a scratch in-memory database and writes its schema to out.
func dump(ctx context.Context, out io.Writer, log *zap.SugaredLogger) error {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := migrations.Migrate(db, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	queries := sqlite.New(db)

	tables, err := queries.DumpTables(ctx)
	if err != nil {
		return fmt.Errorf("dump tables: %w", err)
	}
	rest, err := queries.DumpRest(ctx)
	if err != nil {
		return fmt.Errorf("dump indexes and triggers: %w", err)
	}

	w := bufio.NewWriter(out)
	for _, statement := range append(tables, rest...) {
		if statement == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s;\n\n", *statement); err != nil {
			return fmt.Errorf("write schema: %w", err)
		}
	}
	if _, err := w.WriteString(sqliteMasterSchema); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}

	return w.Flush()
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	// stdout may carry the schema
	loggerConfig.OutputPaths = []string{"stderr"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	loggerConfig.Level = zap.NewAtomicLevelAt(level)

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}

// sqliteMasterSchema lets sqlc resolve queries against sqlite_master.
const sqliteMasterSchema = `create table sqlite_master (
    type     text,
    name     text,
    tbl_name text,
    rootpage int,
    sql      text
);
`

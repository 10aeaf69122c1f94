// Package store persists router snapshots to Postgres.
//
// The tables are owned by the caller:
//
//	<prefix>devices (id, taken_at, hostname, mac, ip, source)
//	<prefix>flows   (id, taken_at, mac, ip, connections, download_bytes, upload_bytes)
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	uuid "github.com/nu7hatch/gouuid"

	"routerwatch/internal/models"
)

// Store accepts parsed snapshots.
type Store interface {
	SaveSnapshot(ctx context.Context, snap models.Snapshot) error
}

type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore writes snapshots with one row per record.
type PostgresStore struct {
	conn   *pgx.Conn
	db     beginner
	prefix string
	newID  func() (string, error)
}

// Open connects to Postgres using dsn.
func Open(ctx context.Context, dsn, tablePrefix string) (*PostgresStore, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	s := newPostgresStore(conn, tablePrefix)
	s.conn = conn
	return s, nil
}

func newPostgresStore(db beginner, tablePrefix string) *PostgresStore {
	return &PostgresStore{
		db:     db,
		prefix: tablePrefix,
		newID:  newRowID,
	}
}

func newRowID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *PostgresStore) table(name string) string {
	return pgx.Identifier{s.prefix + name}.Sanitize()
}

// SaveSnapshot inserts every device and flow of snap in one transaction.
// Nothing is written when any insert fails.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap models.Snapshot) error {
	deviceSQL := fmt.Sprintf(`INSERT INTO %s (id, taken_at, hostname, mac, ip, source) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.table("devices"))
	flowSQL := fmt.Sprintf(`INSERT INTO %s (id, taken_at, mac, ip, connections, download_bytes, upload_bytes) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.table("flows"))

	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		for _, d := range snap.Devices {
			id, err := s.newID()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, deviceSQL, id, snap.TakenAt, d.Hostname, d.MAC, d.IP, string(d.Source)); err != nil {
				return fmt.Errorf("insert device %s: %w", d.MAC, err)
			}
		}

		for _, f := range snap.Flows {
			id, err := s.newID()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, flowSQL, id, snap.TakenAt, f.MAC, f.IP, f.Connections, f.DownloadBytes, f.UploadBytes); err != nil {
				return fmt.Errorf("insert flow %s: %w", f.MAC, err)
			}
		}
		return nil
	})
}

// Close releases the connection, if any.
func (s *PostgresStore) Close(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close(ctx)
}

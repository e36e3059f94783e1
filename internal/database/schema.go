package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL for the three directory tables.  Shows reference both
// parents with foreign keys; child rows are removed explicitly by the owning
// repository inside the same transaction rather than by ON DELETE CASCADE,
// so the cascade stays visible in application code.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name                VARCHAR(255)  NOT NULL,
		genres              JSON          NULL,
		address             VARCHAR(255)  NOT NULL DEFAULT '',
		city                VARCHAR(120)  NOT NULL,
		state               VARCHAR(120)  NOT NULL,
		phone               VARCHAR(120)  NOT NULL DEFAULT '',
		website             VARCHAR(120)  NOT NULL DEFAULT '',
		facebook_link       VARCHAR(120)  NOT NULL DEFAULT '',
		seeking_talent      BOOLEAN       NOT NULL DEFAULT FALSE,
		seeking_description VARCHAR(120)  NOT NULL DEFAULT '',
		image_link          VARCHAR(500)  NOT NULL DEFAULT '',
		PRIMARY KEY (id),
		KEY idx_venues_location (city, state)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS artists (
		id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name                VARCHAR(255)  NOT NULL,
		genres              JSON          NULL,
		city                VARCHAR(120)  NOT NULL,
		state               VARCHAR(120)  NOT NULL,
		phone               VARCHAR(120)  NOT NULL DEFAULT '',
		website             VARCHAR(120)  NOT NULL DEFAULT '',
		facebook_link       VARCHAR(120)  NOT NULL DEFAULT '',
		seeking_venue       BOOLEAN       NOT NULL DEFAULT FALSE,
		seeking_description VARCHAR(120)  NOT NULL DEFAULT '',
		image_link          VARCHAR(500)  NOT NULL DEFAULT '',
		availability        TEXT          NULL,
		PRIMARY KEY (id),
		KEY idx_artists_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS shows (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		start_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		artist_id  BIGINT UNSIGNED NOT NULL,
		venue_id   BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY idx_shows_artist (artist_id),
		KEY idx_shows_venue (venue_id),
		CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists (id),
		CONSTRAINT fk_shows_venue  FOREIGN KEY (venue_id)  REFERENCES venues (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the directory tables when they do not exist yet.  It
// is called once at startup so a fresh database becomes usable without a
// separate migration step.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

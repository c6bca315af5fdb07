package store

const schemaVersion = 1

// schema is the fresh-install DDL.
var schema = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS runs (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	learner        TEXT NOT NULL,
	spec           TEXT NOT NULL,
	seed           INTEGER NOT NULL,
	shuffled       INTEGER NOT NULL DEFAULT 0,
	split          TEXT NOT NULL DEFAULT '',
	trials         INTEGER NOT NULL,
	precision_mean REAL NOT NULL,
	precision_std  REAL NOT NULL,
	recall_mean    REAL NOT NULL,
	recall_std     REAL NOT NULL,
	f1_mean        REAL NOT NULL,
	f1_std         REAL NOT NULL,
	started_at     TEXT NOT NULL,
	elapsed_ms     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

CREATE TABLE IF NOT EXISTS trials (
	run_id    TEXT NOT NULL REFERENCES runs(id),
	idx       INTEGER NOT NULL,
	precision REAL NOT NULL,
	recall    REAL NOT NULL,
	f1        REAL NOT NULL,
	words     INTEGER NOT NULL,
	PRIMARY KEY (run_id, idx)
);
`

package store

const schema = `
CREATE TABLE IF NOT EXISTS scans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP NOT NULL,
    project_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS scan_results (
    scan_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    path TEXT NOT NULL,
    ecosystem TEXT NOT NULL,
    framework TEXT,
    outdated_count INTEGER NOT NULL,
    major_count INTEGER NOT NULL,
    security_count INTEGER NOT NULL,
    score INTEGER NOT NULL,
    checked_at TIMESTAMP NOT NULL,
    FOREIGN KEY (scan_id) REFERENCES scans(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_results_scan ON scan_results(scan_id);
CREATE INDEX IF NOT EXISTS idx_results_name ON scan_results(name);
`

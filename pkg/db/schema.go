package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Records: one extracted software record per requested URL
CREATE TABLE IF NOT EXISTS records (
    record_id INTEGER PRIMARY KEY AUTOINCREMENT,
    request_url TEXT NOT NULL UNIQUE,  -- sanitized URL the record was extracted from
    url TEXT NOT NULL,                 -- og:url or request_url
    item_type TEXT NOT NULL,
    title TEXT NOT NULL,
    abstract_note TEXT,
    library_catalog TEXT NOT NULL,
    company TEXT,
    date TEXT,                         -- free-form, as shown by the store
    version TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_records_url ON records(url);
CREATE INDEX IF NOT EXISTS idx_records_updated ON records(updated_at DESC);

-- Record creators, in display order
CREATE TABLE IF NOT EXISTS record_creators (
    record_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    first_name TEXT,
    last_name TEXT NOT NULL,
    creator_type TEXT NOT NULL,
    field_mode INTEGER DEFAULT 0,
    PRIMARY KEY (record_id, position),
    FOREIGN KEY (record_id) REFERENCES records(record_id) ON DELETE CASCADE
);

-- Record metadata: extraction trace, language, snapshot
CREATE TABLE IF NOT EXISTS record_meta (
    meta_id INTEGER PRIMARY KEY AUTOINCREMENT,
    record_id INTEGER NOT NULL,
    namespace TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    FOREIGN KEY (record_id) REFERENCES records(record_id) ON DELETE CASCADE,
    UNIQUE(record_id, namespace, key)
);

CREATE INDEX IF NOT EXISTS idx_record_meta_record ON record_meta(record_id);
CREATE INDEX IF NOT EXISTS idx_record_meta_namespace ON record_meta(namespace);

-- Fetches: every page request, successful or not
CREATE TABLE IF NOT EXISTS fetches (
    fetch_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    fetched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    status_code INTEGER,
    error_type TEXT,
    success BOOLEAN NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fetches_url ON fetches(url);
`

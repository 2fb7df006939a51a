package store

// Schema is the lottiegrab record schema. Records are keyed by exchange
// fingerprint and bulk-deleted per session on top-level navigation.
const Schema = `
CREATE TABLE IF NOT EXISTS animations (
    fingerprint   TEXT PRIMARY KEY,
    id            TEXT NOT NULL,
    session_id    TEXT NOT NULL,
    bm_version    TEXT NOT NULL DEFAULT '',
    num_layers    INTEGER NOT NULL DEFAULT 0,
    width         REAL NOT NULL DEFAULT 0,
    height        REAL NOT NULL DEFAULT 0,
    frame_rate    REAL NOT NULL DEFAULT 0,
    num_frames    REAL NOT NULL DEFAULT 0,
    meta_json     TEXT NOT NULL DEFAULT '',
    lottie_url    TEXT NOT NULL,
    tab_url       TEXT NOT NULL DEFAULT '',
    from_archive  INTEGER NOT NULL DEFAULT 0,
    discovered_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_animations_session ON animations(session_id, discovered_at DESC);
`

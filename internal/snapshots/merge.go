package snapshots

import (
	"encoding/json"
	"fmt"

	"dario.cat/mergo"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
)

// document is a snapshot file decoded to its top-level keys. Keeping the raw values lets a
// present-but-empty key ("standings": []) be told apart from an absent one.
type document map[string]json.RawMessage

// Keys each snapshot document owns. The season status is derived on read and never stored.
var documentKeys = map[snapshotKind][]string{
	kindSummary: {"activity", "name", "seasonStartDate", "updatedAt", "standings", "recentMatches", "upcomingMatches"},
	kindDetail:  {"activity", "pitchers", "batters", "matches", "medals", "events"},
}

func decodeDocument(data []byte) (document, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = document{}
	}
	return doc, nil
}

// Merge overlays detail onto summary key by key: every key present in detail replaces the
// summary's, even when its value is empty. Keys absent from both resolve to empty collections.
func Merge(summary, detail document) (records.Record, error) {
	merged := document{}
	for _, doc := range []document{summary, detail} {
		if err := mergo.Merge(&merged, doc, mergo.WithOverride); err != nil {
			return records.Record{}, fmt.Errorf("merge snapshots: %w", err)
		}
	}
	return merged.record()
}

func (d document) record() (records.Record, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return records.Record{}, err
	}
	var rec records.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return records.Record{}, err
	}
	return rec, nil
}

// project encodes the keys of rec owned by kind.
func project(rec records.Record, kind snapshotKind) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	full, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	out := make(document, len(documentKeys[kind]))
	for _, key := range documentKeys[kind] {
		if v, ok := full[key]; ok {
			out[key] = v
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

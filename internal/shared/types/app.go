package types

// AppRecord describes one application as reported by the native detection
// provider. BundleID is never empty in enumeration output; Name may be empty
// when system metadata is missing.
type AppRecord struct {
	BundleID string `json:"bundle_id"`
	Name     string `json:"name"`
}

// Valid reports whether the record may be included in enumeration output.
func (r AppRecord) Valid() bool {
	return r.BundleID != ""
}

// FilterValid drops records with an empty bundle identifier. Best-effort
// enumeration may surface partially installed or corrupt entries; those are
// omitted rather than serialized with a null id.
func FilterValid(records []AppRecord) []AppRecord {
	out := make([]AppRecord, 0, len(records))
	for _, r := range records {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}

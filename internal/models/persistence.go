package models

// ResultsFileVersion is written into every store file. Files without a version
// are the bare-list layout of the first releases.
const ResultsFileVersion = 2

// ResultsFile is the on-disk envelope of the result store.
type ResultsFile struct {
	Version     int         `json:"version"`
	GeneratedAt string      `json:"generated_at"`
	Results     []RawResult `json:"results"`
}

package index

// PeriodIndex defines the interface for period indexing operations.
// Consumers should depend on this interface rather than the concrete
// *DB type to facilitate testing with mocks.
type PeriodIndex interface {
	UpsertPeriod(r PeriodRow, body string) error
	DeletePeriod(path string) error
	GetPeriod(path string) (*PeriodRow, error)
	ListPeriods(kind string, limit, offset int) ([]PeriodRow, int, error)
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	Search(query string, limit int) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies PeriodIndex at compile time.
var _ PeriodIndex = (*DB)(nil)

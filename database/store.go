package database

// Store bundles the GORM-backed profile repository with the raw-SQL
// population reader behind one value, which is what the personality engine
// consumes.
type Store struct {
	*ProfileRepository
	*PopulationRepository
}

// NewStore creates a combined store over both connections
func NewStore(gormDB *Database, rawDB *DB) *Store {
	return &Store{
		ProfileRepository:    NewProfileRepository(gormDB),
		PopulationRepository: NewPopulationRepository(rawDB),
	}
}

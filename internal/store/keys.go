package store

// Slot keys. These are part of the export document format.
const (
	KeySeeds          = "seeds"
	KeyLogs           = "logs"
	KeyScheduledTasks = "scheduledTasks"
	KeyCustomTasks    = "customTasks"
	KeyPlantings      = "plantings"
	KeyJournalEntries = "journalEntries"
	KeyTheme          = "theme"
	KeySeedDatabase   = "seedDatabase"
	KeySchemaVersion  = "schemaVersion"
)

// CollectionKeys are the slots holding record arrays.
var CollectionKeys = []string{
	KeySeeds,
	KeyLogs,
	KeyScheduledTasks,
	KeyCustomTasks,
	KeyPlantings,
	KeyJournalEntries,
	KeySeedDatabase,
}

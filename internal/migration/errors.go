package migration

// TextCodeSourceUnreadable tags failures to open the export file.
const TextCodeSourceUnreadable = "MIGRATION_SOURCE_UNREADABLE"

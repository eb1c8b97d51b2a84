package schema

// BackupsTable represents the 'backups' table
type BackupsTable struct {
	Table     string
	ID        string
	Filename  string
	Filepath  string
	Size      string
	CreatedAt string
	CreatedBy string
	Type      string
	Notes     string
}

// Backups is the schema definition for backups
var Backups = BackupsTable{
	Table:     "backups",
	ID:        "id",
	Filename:  "filename",
	Filepath:  "filepath",
	Size:      "size",
	CreatedAt: "created_at",
	CreatedBy: "created_by",
	Type:      "type",
	Notes:     "notes",
}

func (t BackupsTable) Columns() []string {
	return []string{t.ID, t.Filename, t.Filepath, t.Size, t.CreatedAt, t.CreatedBy, t.Type, t.Notes}
}

package helpers

import "database/sql"

// GetContentNullString converts a string value to sql.NullString.
// An empty string is stored as NULL.
func GetContentNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// GetNullInt32 converts an int pointer to sql.NullInt32.
func GetNullInt32(i *int) sql.NullInt32 {
	if i == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*i), Valid: true}
}

// IntPtr returns the value of a NullInt32 as a pointer.
func IntPtr(n sql.NullInt32) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int32)
	return &v
}

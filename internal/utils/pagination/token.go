package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EntryCursor is the position of the last journal entry on a page. Entries
// are listed newest first by entry date, then creation time, then ID.
type EntryCursor struct {
	EntryDate time.Time
	CreatedAt time.Time
	EntryID   string
}

// EncodeEntryToken creates a base64 encoded token from an entry cursor.
func EncodeEntryToken(c EntryCursor) string {
	return EncodeMultiFieldToken(c.EntryDate.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.EntryID)
}

// DecodeEntryToken parses a token produced by EncodeEntryToken.
func DecodeEntryToken(token string) (EntryCursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return EntryCursor{}, err
	}
	if len(parts) != 3 || parts[2] == "" {
		return EntryCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return EntryCursor{}, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return EntryCursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return EntryCursor{EntryDate: entryDate, CreatedAt: createdAt, EntryID: parts[2]}, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields.
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}

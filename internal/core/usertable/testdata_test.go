package usertable

import (
	"fmt"
	"time"
)

func sampleRows(n int) []UserRecord {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]UserRecord, n)
	for i := range rows {
		rows[i] = UserRecord{
			UserID:    fmt.Sprintf("u%d", i+1),
			Username:  fmt.Sprintf("user%d", i+1),
			Email:     fmt.Sprintf("user%d@example.com", i+1),
			Role:      "member",
			CreatedAt: base.AddDate(0, 0, i),
		}
	}
	return rows
}

func ids(rows []UserRecord) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.UserID
	}
	return out
}

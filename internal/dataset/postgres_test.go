package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSelectQueryQuotesIdentifiers(t *testing.T) {
	q := selectQuery("student habits", []string{"student_id", "exam_score"})
	assert.Equal(t, `SELECT "student_id", "exam_score" FROM "student habits"`, q)
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "", formatValue(nil))
	assert.Equal(t, "72.5", formatValue([]byte("72.5")))
	assert.Equal(t, "3.25", formatValue(3.25))
	assert.Equal(t, "21", formatValue(int64(21)))
	assert.Equal(t, "Yes", formatValue("Yes"))
	assert.Equal(t, "2024-05-01T12:00:00Z", formatValue(ts))
}

func TestPostgresSourceName(t *testing.T) {
	src := NewPostgresSource("postgres://localhost/db", "student_habits")
	assert.Equal(t, "postgres:student_habits", src.Name())
	assert.NoError(t, src.Close())
}

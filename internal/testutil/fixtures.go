// Package testutil builds deterministic student habits datasets for tests.
package testutil

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Header is the column order of student_habits_performance.csv
var Header = []string{
	"student_id", "age", "gender", "study_hours_per_day", "social_media_hours",
	"netflix_hours", "part_time_job", "attendance_percentage", "sleep_hours",
	"diet_quality", "exercise_frequency", "parental_education_level",
	"internet_quality", "mental_health_rating", "extracurricular_participation",
	"exam_score",
}

var (
	genders    = []string{"Female", "Male", "Other"}
	yesNo      = []string{"No", "Yes"}
	diets      = []string{"Fair", "Good", "Poor"}
	educations = []string{"Master", "High School", "Bachelor", "None"}
	internet   = []string{"Average", "Poor", "Good"}
)

// StudentHabitsCSV returns n rows of synthetic data generated from seed.
// The first rows cycle through every category in a fixed order, later rows
// draw categories at random, and exam_score is a noisy linear function of
// the features.
func StudentHabitsCSV(n int, seed int64) string {
	rng := rand.New(rand.NewSource(seed))

	var sb strings.Builder
	sb.WriteString(strings.Join(Header, ","))
	sb.WriteString("\n")

	for i := 0; i < n; i++ {
		pick := func(options []string, offset int) string {
			if i < len(options) {
				return options[(i+offset)%len(options)]
			}
			return options[rng.Intn(len(options))]
		}

		age := 17 + rng.Intn(8)
		gender := pick(genders, 0)
		study := round1(rng.Float64() * 8)
		social := round1(rng.Float64() * 6)
		netflix := round1(rng.Float64() * 4)
		job := pick(yesNo, 0)
		attendance := round1(60 + rng.Float64()*40)
		sleep := round1(4 + rng.Float64()*6)
		diet := pick(diets, 1)
		exercise := rng.Intn(7)
		edu := pick(educations, 0)
		net := pick(internet, 0)
		mental := 1 + rng.Intn(10)
		extra := pick(yesNo, 1)

		score := 20 + 9.5*study - 2.5*social - 2*netflix + 0.1*attendance +
			2*sleep + 1.5*float64(exercise) + 1.8*float64(mental) + rng.NormFloat64()*3
		if job == "Yes" {
			score -= 2
		}
		if diet == "Poor" {
			score -= 1.5
		}

		fmt.Fprintf(&sb, "S%04d,%d,%s,%.1f,%.1f,%.1f,%s,%.1f,%.1f,%s,%d,%s,%s,%d,%s,%.1f\n",
			1000+i, age, gender, study, social, netflix, job, attendance, sleep,
			diet, exercise, edu, net, mental, extra, score)
	}
	return sb.String()
}

// WriteFile writes content into a file under t.TempDir and returns its path
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func round1(v float64) float64 {
	return float64(int(v*10)) / 10
}

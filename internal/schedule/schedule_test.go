package schedule

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func sample() *Schedule {
	s := Empty()
	s.Rows = []Row{
		{TeacherID: "123456", Teacher: "Ana", Subject: "Calculo", Room: "A", Day: "LUNES", TimeRange: "08:00"},
		{TeacherID: "223456", Teacher: "Luis", Subject: "Fisica", Room: "B", Day: "MIÉRCOLES", TimeRange: "09:00"},
		{TeacherID: "99", Teacher: "Eva", Subject: "Arte", Room: "C", Day: "LUNES", TimeRange: "10:00"},
	}
	return s
}

func teachers(s *Schedule) []string {
	var out []string
	for _, r := range s.Rows {
		out = append(out, r.Teacher)
	}
	return out
}

func TestFindTeacher(t *testing.T) {
	s := sample()
	if diff := cmp.Diff([]string{"Ana", "Luis"}, teachers(s.FindTeacher("23456.0"))); diff != "" {
		t.Errorf("FindTeacher mismatch (-want +got):\n%s", diff)
	}
	if got := s.FindTeacher("").Len(); got != 3 {
		t.Errorf("blank search should match all rows, got %d", got)
	}
}

func TestByTeacher(t *testing.T) {
	if got := teachers(sample().ByTeacher(" 99.0 ")); !cmp.Equal(got, []string{"Eva"}) {
		t.Errorf("ByTeacher = %v", got)
	}
}

func TestDaily(t *testing.T) {
	s := sample()
	if diff := cmp.Diff([]string{"Ana", "Eva"}, teachers(s.Daily(" lunes"))); diff != "" {
		t.Errorf("Daily mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Luis"}, teachers(s.Daily("miércoles"))); diff != "" {
		t.Errorf("Daily mismatch (-want +got):\n%s", diff)
	}
}

func TestDaily_ReturnsCopy(t *testing.T) {
	s := sample()
	d := s.Daily("LUNES")
	d.Rows[0].Teacher = "changed"
	if s.Rows[0].Teacher != "Ana" {
		t.Error("Daily shares rows with its source")
	}
}

func TestToday(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-08", "LUNES"},
		{"2024-01-10", "MIÉRCOLES"},
		{"2024-01-13", "SÁBADO"},
		{"2024-01-14", "DOMINGO"},
	}
	for _, tt := range tests {
		d, _ := time.Parse("2006-01-02", tt.date)
		if got := Today(d); got != tt.want {
			t.Errorf("Today(%s) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestDayName(t *testing.T) {
	monday := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	if got := DayName("Today", monday); got != "LUNES" {
		t.Errorf("DayName(today) = %q", got)
	}
	if got := DayName(" jueves ", monday); got != "JUEVES" {
		t.Errorf("DayName(jueves) = %q", got)
	}
}

func TestEmpty_CarriesFullHeader(t *testing.T) {
	got := Empty().Table().Columns
	want := append(append([]string{"nroidenti", "profesor", "materia", "aula", "dia", "hora_ini", "hora_fin"}, PassthroughColumns...), "horario")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
}

package tui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"facilitiesdesk/keydesk/internal/domain"
	"facilitiesdesk/keydesk/internal/keylog"
	"facilitiesdesk/keydesk/internal/schedule"
	"facilitiesdesk/keydesk/internal/util"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when a user cancels an interactive flow.
var ErrAborted = errors.New("aborted by user")

// DeliverKeyForm walks the desk through a key hand-out: look up a teacher
// among the given classes, pick the class, add notes and confirm. classes
// is normally today's schedule.
func DeliverKeyForm(classes *schedule.Schedule, day string) (*keylog.Delivery, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	if classes.Len() == 0 {
		return nil, fmt.Errorf("%w for %s", domain.ErrNoMatchingClass, day)
	}

	var teacherID string
	idField := huh.NewInput().
		Title("Teacher ID").
		Description(fmt.Sprintf("%d classes on %s. Leave blank to list them all.", classes.Len(), day)).
		Value(&teacherID)

	if err := runForm(accessible, huh.NewGroup(idField)); err != nil {
		return nil, err
	}

	matches := classes.FindTeacher(teacherID)
	if matches.Len() == 0 {
		return nil, fmt.Errorf("%w for teacher %q on %s", domain.ErrNoMatchingClass, util.NormalizeTeacherID(teacherID), day)
	}

	var (
		choice  string
		notes   string
		confirm bool
	)
	options := buildClassOptions(matches.Rows)
	if len(options) == 1 {
		choice = options[0].Value
	}

	classField := huh.NewSelect[string]().
		Title("Class").
		Options(options...).
		Value(&choice).
		Height(selectHeight(len(options), 12)).
		Validate(huh.ValidateNotEmpty())

	notesField := huh.NewInput().
		Title("Notes").
		Placeholder("optional").
		Value(&notes)

	summary := huh.NewNote().
		Title("Summary").
		DescriptionFunc(func() string {
			r, ok := pickRow(matches.Rows, choice)
			if !ok {
				return ""
			}
			return classSummary(r)
		}, &choice)

	confirmField := huh.NewConfirm().
		Title("Hand out this key?").
		Value(&confirm)

	if err := runForm(accessible,
		huh.NewGroup(classField),
		huh.NewGroup(notesField),
		huh.NewGroup(summary, confirmField),
	); err != nil {
		return nil, err
	}
	if !confirm {
		return nil, ErrAborted
	}

	r, ok := pickRow(matches.Rows, choice)
	if !ok {
		return nil, ErrAborted
	}
	d := DeliveryFromRow(r)
	d.Notes = strings.TrimSpace(notes)
	return &d, nil
}

// DeliveryFromRow builds a ledger delivery for a scheduled class.
func DeliveryFromRow(r schedule.Row) keylog.Delivery {
	return keylog.Delivery{
		TeacherID: r.TeacherID,
		Teacher:   r.Teacher,
		Subject:   r.Subject,
		Room:      r.Room,
		Day:       r.Day,
		TimeRange: r.TimeRange,
	}
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

func buildClassOptions(rows []schedule.Row) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(rows))
	for i, r := range rows {
		options = append(options, huh.NewOption(classLabel(r), strconv.Itoa(i)))
	}
	return options
}

func classLabel(r schedule.Row) string {
	timeRange := r.TimeRange
	if timeRange == "" {
		timeRange = "sin horario"
	}
	return fmt.Sprintf("%s  %s  %s - %s (%s)", timeRange, r.Room, r.Subject, r.Teacher, r.TeacherID)
}

func classSummary(r schedule.Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Teacher:  %s (%s)\n", r.Teacher, r.TeacherID)
	fmt.Fprintf(&b, "Subject:  %s\n", r.Subject)
	fmt.Fprintf(&b, "Room:     %s\n", r.Room)
	fmt.Fprintf(&b, "Schedule: %s %s", r.Day, r.TimeRange)
	return b.String()
}

func pickRow(rows []schedule.Row, choice string) (schedule.Row, bool) {
	i, err := strconv.Atoi(choice)
	if err != nil || i < 0 || i >= len(rows) {
		return schedule.Row{}, false
	}
	return rows[i], true
}

func selectHeight(optionCount, max int) int {
	if optionCount < max {
		return optionCount
	}
	return max
}

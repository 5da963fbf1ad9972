package key

import (
	"fmt"
	"os"
	"strings"

	"facilitiesdesk/keydesk/internal/auditlog"
	"facilitiesdesk/keydesk/internal/desk"
	"facilitiesdesk/keydesk/internal/domain"
	"facilitiesdesk/keydesk/internal/keylog"
	"facilitiesdesk/keydesk/internal/schedule"
	"facilitiesdesk/keydesk/internal/tui"
	"facilitiesdesk/keydesk/internal/util"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

// DeliverCommand returns the "key deliver" command.
func DeliverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deliver",
		Short: "Hand out the key for a scheduled class",
		Long: `Hand out a classroom key for one of the teacher's classes on a day.

Without --teacher in a terminal, an interactive form lists the day's classes.
When the teacher has several classes that day, narrow the choice with --room
or --subject.

Examples:
  keydesk key deliver
  keydesk key deliver --teacher 1234567
  keydesk key deliver --teacher 1234567 --day MARTES --room B-2 --notes "con control"`,
		RunE:         runDeliver,
		SilenceUsage: true,
	}

	cmd.Flags().String("teacher", "", "Teacher identifier")
	cmd.Flags().String("day", "today", `Day of week (e.g. LUNES) or "today"`)
	cmd.Flags().String("room", "", "Room, matched as a substring when the teacher has several classes")
	cmd.Flags().String("subject", "", "Subject, matched as a substring when the teacher has several classes")
	cmd.Flags().String("notes", "", "Free-text notes stored with the hand-out")

	return cmd
}

func runDeliver(cmd *cobra.Command, args []string) error {
	teacher, _ := cmd.Flags().GetString("teacher")
	dayFlag, _ := cmd.Flags().GetString("day")
	room, _ := cmd.Flags().GetString("room")
	subject, _ := cmd.Flags().GetString("subject")
	notes, _ := cmd.Flags().GetString("notes")

	s, err := desk.FromCommand(cmd)
	if err != nil {
		return err
	}
	store, err := s.OpenSchedule()
	if err != nil {
		return err
	}
	day := schedule.DayName(dayFlag, s.Now())
	classes := store.Daily(day)

	var d keylog.Delivery
	if strings.TrimSpace(teacher) == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("--teacher is required when not running in a terminal")
		}
		picked, err := tui.DeliverKeyForm(classes, day)
		if err != nil {
			return err
		}
		d = *picked
	} else {
		row, err := pickClass(classes, teacher, room, subject, day)
		if err != nil {
			desk.Tag(cmd, auditlog.Metadata{TeacherID: util.NormalizeTeacherID(teacher), Room: room})
			return err
		}
		d = tui.DeliveryFromRow(row)
		d.Notes = strings.TrimSpace(notes)
	}
	desk.Tag(cmd, auditlog.Metadata{TeacherID: d.TeacherID, TeacherName: d.Teacher, Room: d.Room})

	ledger, err := s.OpenLedger()
	if err != nil {
		return err
	}
	rec, err := ledger.Deliver(d)
	if err := s.Check(err); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Key for %s delivered to %s (%s) at %s %s.\n",
		rec.Room, rec.Teacher, rec.TeacherID, rec.DeliveryDate, rec.DeliveryTime)
	return nil
}

// pickClass finds the one class on day that the flags describe.
func pickClass(classes *schedule.Schedule, teacher, room, subject, day string) (schedule.Row, error) {
	id := util.NormalizeTeacherID(teacher)

	var matches []schedule.Row
	for _, r := range classes.ByTeacher(id).Rows {
		if room != "" && !util.ContainsFold(r.Room, room) {
			continue
		}
		if subject != "" && !util.ContainsFold(r.Subject, subject) {
			continue
		}
		matches = append(matches, r)
	}

	switch len(matches) {
	case 0:
		return schedule.Row{}, fmt.Errorf("deliver: %w for teacher %q on %s", domain.ErrNoMatchingClass, id, day)
	case 1:
		return matches[0], nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "teacher %q has %d classes on %s; pick one with --room or --subject:", id, len(matches), day)
	for _, r := range matches {
		fmt.Fprintf(&b, "\n  %s  %s  %s", r.TimeRange, r.Room, r.Subject)
	}
	return schedule.Row{}, fmt.Errorf("%s", b.String())
}

package key

import (
	"fmt"

	"facilitiesdesk/keydesk/internal/auditlog"
	"facilitiesdesk/keydesk/internal/desk"
	"facilitiesdesk/keydesk/internal/util"

	"github.com/spf13/cobra"
)

// ReturnCommand returns the "key return" command.
func ReturnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "return <teacher-id>",
		Short: "Take back a teacher's outstanding key",
		Long: `Mark the teacher's outstanding key as returned now.

Examples:
  keydesk key return 1234567`,
		Args:         cobra.ExactArgs(1),
		RunE:         runReturn,
		SilenceUsage: true,
	}
}

func runReturn(cmd *cobra.Command, args []string) error {
	desk.Tag(cmd, auditlog.Metadata{TeacherID: util.NormalizeTeacherID(args[0])})

	s, err := desk.FromCommand(cmd)
	if err != nil {
		return err
	}
	ledger, err := s.OpenLedger()
	if err != nil {
		return err
	}

	rec, err := ledger.Return(args[0])
	if err := s.Check(err); err != nil {
		return err
	}
	desk.Tag(cmd, auditlog.Metadata{TeacherName: rec.Teacher, Room: rec.Room})

	fmt.Fprintf(cmd.OutOrStdout(), "Key for %s returned by %s (%s) at %s %s.\n",
		rec.Room, rec.Teacher, rec.TeacherID, rec.ReturnDate, rec.ReturnTime)
	return nil
}

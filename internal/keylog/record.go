package keylog

import (
	"facilitiesdesk/keydesk/internal/table"
	"facilitiesdesk/keydesk/internal/util"
)

// Status is the lifecycle state of a key hand-out.
type Status string

const (
	StatusDelivered Status = "Entregada"
	StatusReturned  Status = "Devuelta"
)

// Ledger column names, in file order.
const (
	ColDeliveryDate = "fecha_entrega"
	ColDeliveryTime = "hora_entrega"
	ColReturnDate   = "fecha_devolucion"
	ColReturnTime   = "hora_devolucion"
	ColDay          = "dia"
	ColSubject      = "materia"
	ColRoom         = "salon"
	ColTeacher      = "docente"
	ColTeacherID    = "nroidenti"
	ColTimeRange    = "horario"
	ColStatus       = "estado"
	ColNotes        = "observaciones"
)

// Columns is the ledger header.
var Columns = []string{
	ColDeliveryDate, ColDeliveryTime, ColReturnDate, ColReturnTime,
	ColDay, ColSubject, ColRoom, ColTeacher, ColTeacherID, ColTimeRange,
	ColStatus, ColNotes,
}

const timeLayout = "15:04:05"

// Record is one key hand-out. Return fields stay empty until the key comes
// back.
type Record struct {
	DeliveryDate string `json:"fecha_entrega"`
	DeliveryTime string `json:"hora_entrega"`
	ReturnDate   string `json:"fecha_devolucion,omitempty"`
	ReturnTime   string `json:"hora_devolucion,omitempty"`
	Day          string `json:"dia"`
	Subject      string `json:"materia"`
	Room         string `json:"salon"`
	Teacher      string `json:"docente"`
	TeacherID    string `json:"nroidenti"`
	TimeRange    string `json:"horario"`
	Status       Status `json:"estado"`
	Notes        string `json:"observaciones,omitempty"`
}

// Outstanding reports whether the key has not been returned.
func (r Record) Outstanding() bool { return r.Status == StatusDelivered }

func (r Record) values() []string {
	return []string{
		r.DeliveryDate, r.DeliveryTime, r.ReturnDate, r.ReturnTime,
		r.Day, r.Subject, r.Room, r.Teacher, r.TeacherID, r.TimeRange,
		string(r.Status), r.Notes,
	}
}

func recordAt(t *table.Table, i int) Record {
	return Record{
		DeliveryDate: t.Value(i, ColDeliveryDate),
		DeliveryTime: t.Value(i, ColDeliveryTime),
		ReturnDate:   t.Value(i, ColReturnDate),
		ReturnTime:   t.Value(i, ColReturnTime),
		Day:          t.Value(i, ColDay),
		Subject:      t.Value(i, ColSubject),
		Room:         t.Value(i, ColRoom),
		Teacher:      t.Value(i, ColTeacher),
		TeacherID:    util.NormalizeTeacherID(t.Value(i, ColTeacherID)),
		TimeRange:    t.Value(i, ColTimeRange),
		Status:       Status(t.Value(i, ColStatus)),
		Notes:        t.Value(i, ColNotes),
	}
}

// Table renders records under the ledger header.
func Table(records []Record) *table.Table {
	t := table.New(Columns...)
	for _, r := range records {
		t.Append(r.values()...)
	}
	return t
}

// Records reads records back from a table. Columns the ledger does not
// know are ignored and missing ones read as empty.
func Records(t *table.Table) []Record {
	out := make([]Record, 0, t.Len())
	for i := range t.Rows {
		out = append(out, recordAt(t, i))
	}
	return out
}

// Export writes records to path in the format implied by its extension.
func Export(records []Record, path string) error {
	return table.WriteFile(path, Table(records))
}

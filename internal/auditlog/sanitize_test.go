package auditlog

import "testing"

func TestSanitizeArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no flags", []string{"return", "55"}, "return 55"},
		{"separate value", []string{"deliver", "--teacher", "55", "--notes", "llave de repuesto"}, "deliver --teacher 55 --notes <redacted>"},
		{"inline value", []string{"deliver", "--notes=ventana rota", "--room", "A"}, "deliver --notes=<redacted> --room A"},
		{"dangling flag", []string{"deliver", "--notes"}, "deliver --notes"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeArgs(tt.args); got != tt.want {
				t.Errorf("SanitizeArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

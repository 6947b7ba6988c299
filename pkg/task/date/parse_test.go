package date

import (
	"testing"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"dots", []string{"26.08.1999"}, "1999-08-26", false},
		{"slashes", []string{"26/08/1999"}, "1999-08-26", false},
		{"hyphens", []string{"26-08-1999"}, "1999-08-26", false},
		{"compact", []string{"26081999"}, "1999-08-26", false},
		{"surrounding junk stripped", []string{" 26.08.1999 ", "due 26.08.1999", "26.08.1999!"}, "1999-08-26", false},
		{"invalid calendar date", []string{"31.02.2030"}, "", true},
		{"month out of range", []string{"26.13.1999"}, "", true},
		{"empty", []string{"", "   ", "abc"}, "", true},
		{"mixed separators", []string{"26.08/1999"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, arg := range tt.args {
				got, err := ParseInput(arg)
				if (err != nil) != tt.wantErr {
					t.Errorf("ParseInput(%q) error = %v, wantErr %v", arg, err, tt.wantErr)
					return
				}
				if err != nil {
					if err != ErrNoMatch {
						t.Errorf("ParseInput(%q) error = %v, want ErrNoMatch", arg, err)
					}
					continue
				}
				if got.String() != tt.want {
					t.Errorf("ParseInput(%q) = %v, want %v", arg, got, tt.want)
				}
			}
		})
	}
}

package topology

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Iron-Ham/tmux-layout/internal/errors"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Record
		wantErr bool
	}{
		{
			name: "absolute directory",
			line: "dev;editor;/home/u/proj",
			want: Record{Session: "dev", Window: "editor", Directory: "/home/u/proj"},
		},
		{
			name: "user relative directory",
			line: "ops;main;~/ops",
			want: Record{Session: "ops", Window: "main", Directory: "~/ops"},
		},
		{
			name: "directory with spaces",
			line: "notes;vim;/home/u/My Notes",
			want: Record{Session: "notes", Window: "vim", Directory: "/home/u/My Notes"},
		},
		{
			name:    "missing field",
			line:    "dev;editor",
			wantErr: true,
		},
		{
			name:    "extra delimiter",
			line:    "dev;edit;or;/home/u",
			wantErr: true,
		},
		{
			name:    "no delimiter",
			line:    "dev",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Decode(%q) error = nil, want error", tt.line)
				}
				if !errors.Is(err, errors.ErrMalformedRecord) {
					t.Errorf("Decode(%q) error = %v, want ErrMalformedRecord", tt.line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%q) unexpected error: %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("Decode(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	topo := Topology{
		{Session: "dev", Window: "editor", Directory: "/home/u/proj"},
		{Session: "dev", Window: "shell", Directory: "/home/u/proj"},
		{Session: "dev", Window: "shell", Directory: "/home/u/proj"},
		{Session: "ops", Window: "main", Directory: "/var/ops"},
		{Session: "scratch", Window: "tmp", Directory: ""},
	}

	got, err := DecodeTopology(strings.NewReader(string(Encode(topo))))
	if err != nil {
		t.Fatalf("DecodeTopology() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, topo) {
		t.Errorf("round trip = %+v, want %+v", got, topo)
	}

	for _, r := range topo {
		back, err := Decode(r.Encode())
		if err != nil {
			t.Fatalf("Decode(%q) unexpected error: %v", r.Encode(), err)
		}
		if back != r {
			t.Errorf("Decode(Encode(%+v)) = %+v", r, back)
		}
	}
}

func TestEncode(t *testing.T) {
	topo := Topology{
		{Session: "dev", Window: "editor", Directory: "/home/u/proj"},
		{Session: "dev", Window: "shell", Directory: "/home/u/proj"},
	}

	want := "dev;editor;/home/u/proj\ndev;shell;/home/u/proj\n"
	if got := string(Encode(topo)); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}

	if got := Encode(nil); len(got) != 0 {
		t.Errorf("Encode(nil) = %q, want empty", got)
	}
}

func TestDecodeTopology_SkipsBlankLines(t *testing.T) {
	input := "\ndev;editor;/home/u/proj\r\n\n\nops;main;/var/ops"

	got, err := DecodeString(input)
	if err != nil {
		t.Fatalf("DecodeString() unexpected error: %v", err)
	}

	want := Topology{
		{Session: "dev", Window: "editor", Directory: "/home/u/proj"},
		{Session: "ops", Window: "main", Directory: "/var/ops"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeString() = %+v, want %+v", got, want)
	}
}

func TestDecodeTopology_MalformedLineAborts(t *testing.T) {
	input := "dev;editor;/home/u/proj\n\ndev;broken\nops;main;/var/ops\n"

	got, err := DecodeString(input)
	if err == nil {
		t.Fatal("DecodeString() error = nil, want malformed record error")
	}
	if got != nil {
		t.Errorf("DecodeString() returned partial topology %+v", got)
	}

	var recErr *errors.RecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("error %v is not a RecordError", err)
	}
	if recErr.Line != 3 {
		t.Errorf("RecordError.Line = %d, want 3", recErr.Line)
	}
	if recErr.Text != "dev;broken" {
		t.Errorf("RecordError.Text = %q, want %q", recErr.Text, "dev;broken")
	}
}

func TestDecodeTopology_Empty(t *testing.T) {
	got, err := DecodeString("")
	if err != nil {
		t.Fatalf("DecodeString(\"\") unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("DecodeString(\"\") = %+v, want empty", got)
	}
}

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		wantErr bool
	}{
		{"valid", Record{"dev", "editor", "/home/u"}, false},
		{"empty directory allowed", Record{"dev", "editor", ""}, false},
		{"empty session", Record{"", "editor", "/home/u"}, true},
		{"empty window", Record{"dev", "", "/home/u"}, true},
		{"delimiter in window", Record{"dev", "a;b", "/home/u"}, true},
		{"delimiter in directory", Record{"dev", "editor", "/tmp/x;y"}, true},
		{"newline in session", Record{"de\nv", "editor", "/home/u"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTopology_Validate(t *testing.T) {
	topo := Topology{
		{Session: "dev", Window: "editor", Directory: "/home/u"},
		{Session: "dev", Window: "bad;name", Directory: "/home/u"},
	}

	err := topo.Validate()
	var recErr *errors.RecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("Validate() error = %v, want RecordError", err)
	}
	if recErr.Line != 2 {
		t.Errorf("RecordError.Line = %d, want 2", recErr.Line)
	}
}

func TestSessions(t *testing.T) {
	topo := Topology{
		{Session: "ops", Window: "main", Directory: "/var/ops"},
		{Session: "dev", Window: "editor", Directory: "/home/u"},
		{Session: "ops", Window: "logs", Directory: "/var/log"},
	}

	want := []string{"ops", "dev"}
	if got := topo.Sessions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sessions() = %v, want %v", got, want)
	}

	groups := topo.BySession()
	if len(groups["ops"]) != 2 || groups["ops"][1].Window != "logs" {
		t.Errorf("BySession()[ops] = %+v", groups["ops"])
	}
}

func TestDifference(t *testing.T) {
	a := Record{Session: "S", Window: "W", Directory: "D"}
	b := Record{Session: "S", Window: "X", Directory: "D"}
	c := Record{Session: "T", Window: "W", Directory: "D"}

	tests := []struct {
		name   string
		target Topology
		live   Topology
		want   map[Record]int
	}{
		{
			name:   "duplicate target single live",
			target: Topology{a, a},
			live:   Topology{a},
			want:   map[Record]int{a: 1},
		},
		{
			name:   "live meets target",
			target: Topology{a, b},
			live:   Topology{b, a},
			want:   map[Record]int{},
		},
		{
			name:   "live exceeds target",
			target: Topology{a},
			live:   Topology{a, a, a, c},
			want:   map[Record]int{},
		},
		{
			name:   "empty live",
			target: Topology{a, b, b},
			live:   nil,
			want:   map[Record]int{a: 1, b: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Difference(tt.target, tt.live)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Difference() = %v, want %v", got, tt.want)
			}
		})
	}
}
